package server

import (
	"log"
	"strings"

	"restaurant-management-backend/internal/admin"
	"restaurant-management-backend/internal/audit"
	"restaurant-management-backend/internal/auth"
	"restaurant-management-backend/internal/config"
	"restaurant-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New - Fiber app'i kurar ve tüm route'ları bağlar. Testler de aynı app'i kullanır.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-CSRF-Token",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kullanıcı yönetimi
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())
	adminRoutes.Put("/users/:id/password", admin.ChangePasswordHandler())

	// Mağaza yönetimi
	adminRoutes.Get("/stores", admin.ListStoresHandler())
	adminRoutes.Post("/stores", admin.CreateStoreHandler())
	adminRoutes.Get("/stores/:id", admin.GetStoreHandler())
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler())
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler())
	adminRoutes.Get("/stores/:id/users", admin.ListStoreUsersHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	return app
}
