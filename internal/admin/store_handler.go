package admin

import (
	"restaurant-management-backend/internal/audit"
	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StoreResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateStoreRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Update tüm alanları yeniden yazar (kısmi değil), o yüzden aynı gövde
type UpdateStoreRequest = CreateStoreRequest

func toStoreResponse(store *models.Store) StoreResponse {
	return StoreResponse{
		ID:        store.ID,
		Name:      store.Name,
		Latitude:  store.Latitude,
		Longitude: store.Longitude,
	}
}

// ----------------------------------------
// MAĞAZA CRUD
// ----------------------------------------

func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := database.DB.Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağazalar listelenemedi")
		}

		res := make([]StoreResponse, 0, len(stores))
		for i := range stores {
			res = append(res, toStoreResponse(&stores[i]))
		}

		return c.JSON(res)
	}
}

func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		return c.JSON(toStoreResponse(&store))
	}
}

func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı boş olamaz")
		}
		// Koordinatlar mağaza varken her zaman dolu olmalı
		if body.Latitude == nil || body.Longitude == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Enlem ve boylam zorunlu")
		}

		store := models.Store{
			Name:      body.Name,
			Latitude:  *body.Latitude,
			Longitude: *body.Longitude,
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "store",
			EntityID:    store.ID,
			Action:      models.AuditActionCreate,
			Description: "Mağaza oluşturuldu: " + store.Name,
			After:       toStoreResponse(&store),
		})

		return c.Status(fiber.StatusCreated).JSON(toStoreResponse(&store))
	}
}

func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}
		before := toStoreResponse(&store)

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı boş olamaz")
		}
		if body.Latitude == nil || body.Longitude == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Enlem ve boylam zorunlu")
		}

		store.Name = body.Name
		store.Latitude = *body.Latitude
		store.Longitude = *body.Longitude

		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "store",
			EntityID:    store.ID,
			Action:      models.AuditActionUpdate,
			Description: "Mağaza güncellendi: " + store.Name,
			Before:      before,
			After:       toStoreResponse(&store),
		})

		return c.JSON(toStoreResponse(&store))
	}
}

// DeleteStoreHandler - DİKKAT: yıkıcı cascade. Mağaza silinince o mağazaya
// atanmış tüm kullanıcılar da silinir.
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz mağaza ID")
		}

		var store models.Store
		if err := database.DB.First(&store, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var users []models.User
			if err := tx.Where("store_id = ?", store.ID).Find(&users).Error; err != nil {
				return err
			}
			for i := range users {
				if err := tx.Model(&users[i]).Association("Roles").Clear(); err != nil {
					return err
				}
				if err := tx.Delete(&users[i]).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&store).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza silinemedi")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "store",
			EntityID:    store.ID,
			Action:      models.AuditActionDelete,
			Description: "Mağaza silindi (atanmış kullanıcılarla birlikte): " + store.Name,
			Before:      toStoreResponse(&store),
		})

		return c.JSON(fiber.Map{"message": "Mağaza silindi"})
	}
}

// GET /api/admin/stores/:id/users
func ListStoreUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var users []models.User
		if err := database.DB.Preload("Roles").Preload("Store").
			Where("store_id = ?", store.ID).
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, toUserResponse(&users[i]))
		}

		return c.JSON(res)
	}
}
