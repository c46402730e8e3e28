package audit

import (
	"fmt"

	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	ActorName   string             `json:"actor_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/admin/audit-logs?entity_type=user&entity_id=1
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Query("entity_type")
		entityIDStr := c.Query("entity_id")

		dbq := database.DB.Model(&models.AuditLog{})

		if entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, entry := range logs {
			res = append(res, AuditLogResponse{
				ID:          entry.ID,
				CreatedAt:   entry.CreatedAt.Format("2006-01-02 15:04:05"),
				ActorName:   entry.ActorName,
				EntityType:  entry.EntityType,
				EntityID:    entry.EntityID,
				Action:      entry.Action,
				Description: entry.Description,
			})
		}

		return c.JSON(res)
	}
}
