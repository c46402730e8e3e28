package admin

import (
	"errors"
	"strings"

	"restaurant-management-backend/internal/audit"
	"restaurant-management-backend/internal/auth"
	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserResponse struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Roles    []string       `json:"roles"`
	Store    *StoreResponse `json:"store"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	StoreID  *uint  `json:"store_id"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	StoreID  *uint   `json:"store_id"` // 0 = mağaza ataması kaldırılır
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func toUserResponse(user *models.User) UserResponse {
	res := UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
	}
	if user.Store != nil {
		store := toStoreResponse(user.Store)
		res.Store = &store
	}
	return res
}

// checkUniqueUserData - username/email benzersizlik ön kontrolü. excludeID
// verilirse o kullanıcının kendi kaydı sayılmaz (update için). Create ve update
// aynı yolu paylaşır; her alan kendi hatasını döner ki frontend hangi alanın
// çakıştığını gösterebilsin.
func checkUniqueUserData(username, email *string, excludeID *uint) error {
	if username != nil {
		q := database.DB.Model(&models.User{}).Where("username = ?", *username)
		if excludeID != nil {
			q = q.Where("id <> ?", *excludeID)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı kontrolü yapılamadı")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten alınmış")
		}
	}

	if email != nil {
		q := database.DB.Model(&models.User{}).Where("email = ?", *email)
		if excludeID != nil {
			q = q.Where("id <> ?", *excludeID)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı kontrolü yapılamadı")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
		}
	}

	return nil
}

func resolveRole(name string) (*models.Role, error) {
	var role models.Role
	roleName := models.RoleName(strings.ToUpper(strings.TrimSpace(name)))
	if err := database.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol: "+name)
	}
	return &role, nil
}

// Ön kontrol best-effort: yarışta unique index son sözü söyler. 23505'i ham
// storage hatası olarak değil, ilgili duplicate hatası olarak döndürüyoruz.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
		}
		return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten alınmış")
	}
	return nil
}

// ----------------------------------------
// KULLANICI CRUD
// ----------------------------------------

func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Preload("Roles").Preload("Store").
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

func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Email == "" || body.Password == "" || body.Role == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı, email, şifre ve rol zorunlu")
		}

		if err := checkUniqueUserData(&body.Username, &body.Email, nil); err != nil {
			return err
		}

		role, err := resolveRole(body.Role)
		if err != nil {
			return err
		}

		user := models.User{
			Username: body.Username,
			Email:    body.Email,
			Roles:    []models.Role{*role},
		}

		if body.StoreID != nil {
			var store models.Store
			if err := database.DB.First(&store, *body.StoreID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
			}
			user.StoreID = &store.ID
			user.Store = &store
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}
		user.PasswordHash = string(hash)

		if err := database.DB.Create(&user).Error; err != nil {
			if mapped := mapUniqueViolation(err); mapped != nil {
				return mapped
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: "Kullanıcı oluşturuldu: " + user.Username,
			After:       toUserResponse(&user),
		})

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(&user))
	}
}

func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}
		userID := uint(id)

		var user models.User
		if err := database.DB.Preload("Roles").Preload("Store").
			First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		before := toUserResponse(&user)

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		// Kısmi güncelleme: sadece gönderilen alanlar değişir
		if body.Username != nil {
			username := strings.TrimSpace(*body.Username)
			if username == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı boş olamaz")
			}
			if err := checkUniqueUserData(&username, nil, &userID); err != nil {
				return err
			}
			user.Username = username
		}

		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email boş olamaz")
			}
			if err := checkUniqueUserData(nil, &email, &userID); err != nil {
				return err
			}
			user.Email = email
		}

		var newRole *models.Role
		if body.Role != nil && strings.TrimSpace(*body.Role) != "" {
			newRole, err = resolveRole(*body.Role)
			if err != nil {
				return err
			}
		}

		if body.StoreID != nil {
			if *body.StoreID == 0 {
				// 0 sentinel: mağaza ataması kaldırılır
				user.StoreID = nil
				user.Store = nil
			} else {
				var store models.Store
				if err := database.DB.First(&store, *body.StoreID).Error; err != nil {
					return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
				}
				user.StoreID = &store.ID
				user.Store = &store
			}
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if newRole != nil {
				// Rol tek başına gelir, mevcut rol setinin tamamını değiştirir
				if err := tx.Model(&user).Association("Roles").Replace(newRole); err != nil {
					return err
				}
				user.Roles = []models.Role{*newRole}
			}
			// Map ile update: nil store_id de yazılır (atama kaldırma)
			return tx.Model(&user).
				Updates(map[string]interface{}{
					"username": user.Username,
					"email":    user.Email,
					"store_id": user.StoreID,
				}).Error
		})
		if err != nil {
			if mapped := mapUniqueViolation(err); mapped != nil {
				return mapped
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: "Kullanıcı güncellendi: " + user.Username,
			Before:      before,
			After:       toUserResponse(&user),
		})

		return c.JSON(toUserResponse(&user))
	}
}

func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
				return err
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionDelete,
			Description: "Kullanıcı silindi: " + user.Username,
			Before:      toUserResponse(&user),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ChangePasswordHandler - admin override: mevcut şifre sorulmaz. Bu route
// RequireRole(ADMIN) arkasında, self-service şifre değiştirme akışı değildir.
func ChangePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.NewPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Yeni şifre boş olamaz")
		}
		if body.NewPassword != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Şifreler eşleşmiyor")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		if err := database.DB.Model(&user).
			Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			ActorName:   actorName(c),
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionPasswordChange,
			Description: "Kullanıcı şifresi değiştirildi: " + user.Username,
		})

		return c.JSON(fiber.Map{"message": "Şifre güncellendi"})
	}
}

func actorName(c *fiber.Ctx) string {
	if name, ok := c.Locals(auth.CtxUsernameKey).(string); ok {
		return name
	}
	return ""
}
