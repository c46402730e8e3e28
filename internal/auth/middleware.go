package auth

import (
	"fmt"
	"strings"

	"restaurant-management-backend/internal/config"
	"restaurant-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxRolesKey    = "roles"

	TokenCookieName = "jwtToken"
)

// JWTMiddleware - token'ı önce cookie'den, yoksa Authorization header'ından okur.
// Doğrulama tamamen stateless: imza + süre kontrolü, sunucu tarafında kayıt yok.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(TokenCookieName)

		if tokenStr == "" {
			authHeader := c.Get("Authorization")
			if authHeader == "" {
				return fiber.NewError(fiber.StatusUnauthorized, "Oturum token'ı eksik")
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
			}
			tokenStr = parts[1]
		}

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Subject)
		c.Locals(CtxRolesKey, claims.Roles)

		return c.Next()
	}
}

// RequireRole - handler çalışmadan önce token'daki rol claim'lerini kontrol eder
func RequireRole(allowedRoles ...models.RoleName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rolesVal := c.Locals(CtxRolesKey)
		roles, ok := rolesVal.([]string)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, allowed := range allowedRoles {
			for _, r := range roles {
				if string(allowed) == r {
					return c.Next()
				}
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}
