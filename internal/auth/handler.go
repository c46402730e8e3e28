package auth

import (
	"strings"

	"restaurant-management-backend/internal/config"
	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const CSRFCookieName = "csrfToken"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username  string `json:"username"`
	CSRFToken string `json:"csrfToken"`
	Message   string `json:"message"`
}

// LoginHandler - kimlik doğrulama + token üretimi. Kullanıcı bulunamadı ve şifre
// yanlış durumları aynı cevabı döner, kullanıcı adı taraması yapılamasın diye.
// Başarısız girişte hiçbir cookie yazılmaz.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}

		var user models.User
		if err := database.DB.Preload("Roles").
			Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTTTL, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		maxAge := int(cfg.JWTTTL.Seconds())

		c.Cookie(&fiber.Cookie{
			Name:     TokenCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   maxAge,
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})

		// Anti-forgery token: opak uuid, body'de ve okunabilir cookie'de
		// (double-submit). HTTPOnly değil, frontend header'a koyabilsin diye.
		csrfToken := uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     CSRFCookieName,
			Value:    csrfToken,
			Path:     "/",
			MaxAge:   maxAge,
			HTTPOnly: false,
			Secure:   true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})

		return c.JSON(LoginResponse{
			Username:  user.Username,
			CSRFToken: csrfToken,
			Message:   "Login successful",
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
		}

		var user models.User
		if err := database.DB.Preload("Roles").Preload("Store").
			First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		response := fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"roles":    user.RoleNames(),
		}
		if user.Store != nil {
			response["store"] = fiber.Map{
				"id":        user.Store.ID,
				"name":      user.Store.Name,
				"latitude":  user.Store.Latitude,
				"longitude": user.Store.Longitude,
			}
		}

		return c.JSON(response)
	}
}
