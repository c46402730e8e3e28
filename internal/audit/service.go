package audit

import (
	"encoding/json"
	"log"

	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/models"
)

type LogOptions struct {
	ActorName   string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog - admin işlemini kayıt altına alır. Log yazılamazsa asıl işlem geri
// alınmaz, sadece loglanır.
func WriteLog(opts LogOptions) {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		ActorName:   opts.ActorName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Println("Audit log kaydedilemedi:", err)
	}
}
