package router

import (
	"time"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/config"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/handler"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/infra"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/middleware"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/repository"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	ocr := infra.NewOCRExtractor(cfg.TesseractEnabled)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	reagentRepo := repository.NewReagentRepository(db)
	usageRepo := repository.NewUsageLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	reagentSvc := service.NewReagentService(reagentRepo, rdb)
	usageSvc := service.NewUsageService(reagentRepo, usageRepo, rdb)
	alertSvc := service.NewAlertService(reagentRepo, rdb, time.Duration(cfg.AlertCacheTTLSeconds)*time.Second)
	importSvc := service.NewImportService(reagentSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	reagentsH := handler.NewReagentsHandler(reagentSvc, reagentRepo, cfg)
	usageH := handler.NewUsageHandler(usageSvc)
	alertsH := handler.NewAlertsHandler(alertSvc, mailer, cfg)
	importH := handler.NewImportHandler(importSvc, ocr)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// QR labels resolve before login so bottle scanning works anywhere
	r.GET("/v1/reagents/:id/qr", reagentsH.QRCode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Any authenticated user may read the catalog, add reagents,
		// bulk import, and log usage (access gate: only edits/deletes and
		// admin views are role-restricted)
		v1.GET("/reagents", reagentsH.List)
		v1.POST("/reagents", reagentsH.Create)
		v1.GET("/reagents/:id", reagentsH.GetByID)
		v1.GET("/reagents/:id/label", reagentsH.Label)
		v1.POST("/reagents/:id/usage", usageH.Record)
		v1.GET("/reagents/:id/usage", usageH.History)
		v1.POST("/reagents/import", importH.ImportSpreadsheet)
		v1.GET("/alerts", alertsH.List)
		v1.POST("/ocr", importH.ExtractText)

		// Admin-only operations
		admin := v1.Group("", middleware.RequireRole(model.RoleAdmin))
		{
			admin.PUT("/reagents/:id", reagentsH.Update)
			admin.DELETE("/reagents/:id", reagentsH.Delete)
			admin.PATCH("/reagents/:id/quantity", reagentsH.AdjustQuantity)

			admin.GET("/admin/overview", alertsH.Overview)
			admin.POST("/alerts/notify", alertsH.Notify)

			admin.POST("/users", usersH.Create)
			admin.GET("/users", usersH.List)
			admin.PUT("/users/:id", usersH.Update)
			admin.DELETE("/users/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
