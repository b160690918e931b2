package server

import (
	"net/http"

	"it-inventory/internal/config"
	"it-inventory/internal/handlers"
	"it-inventory/internal/middleware"
	"it-inventory/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, log *zap.Logger, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inventory_session", sessionStore))

	h := handlers.New(cfg, log, db)

	api := r.Group("/api")

	// AUTH
	api.POST("/login", h.Login)
	api.GET("/me", h.Me)

	// чтение доступно без авторизации
	api.GET("/assets", h.ListAssets)
	api.GET("/assets/:id", h.GetAsset)
	api.GET("/assets/:id/qr", h.AssetQR)
	api.GET("/changes", h.ListChanges)
	api.GET("/moves", h.ListMoves)
	api.GET("/types", h.ListTypes)
	api.GET("/types/:id/properties", h.TypeProperties)
	api.GET("/properties", h.ListProperties)
	api.GET("/statuses", h.ListStatuses)
	api.GET("/departments", h.ListDepartments)
	api.GET("/employees", h.ListEmployees)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.POST("/logout", h.Logout)

	// АКТИВЫ
	auth.POST("/assets", h.CreateAsset)
	auth.PUT("/assets/:id", h.UpdateAsset)
	auth.DELETE("/assets/:id", h.DeleteAsset)
	auth.POST("/qrcodes", h.BatchQR)

	// СПРАВОЧНИКИ
	auth.POST("/types", h.CreateType)
	auth.PUT("/types/:id", h.UpdateType)
	auth.DELETE("/types/:id", h.DeleteType)
	auth.PUT("/types/:id/properties", h.UpdateTypeProperties)

	auth.POST("/properties", h.CreateProperty)
	auth.PUT("/properties/:id", h.UpdateProperty)
	auth.DELETE("/properties/:id", h.DeleteProperty)

	auth.POST("/statuses", h.CreateStatus)
	auth.PUT("/statuses/:id", h.UpdateStatus)
	auth.DELETE("/statuses/:id", h.DeleteStatus)

	auth.POST("/departments", h.CreateDepartment)
	auth.PUT("/departments/:id", h.UpdateDepartment)
	auth.DELETE("/departments/:id", h.DeleteDepartment)

	auth.POST("/employees", h.CreateEmployee)
	auth.PUT("/employees/:id", h.UpdateEmployee)
	auth.DELETE("/employees/:id", h.DeleteEmployee)

	// ПОТРЕБНОСТИ
	auth.GET("/needs", h.ListNeeds)
	auth.POST("/needs", h.CreateNeed)
	auth.DELETE("/needs/batch-delete", h.BatchDeleteNeeds)
	auth.PATCH("/needs/batch-update", h.BatchUpdateNeeds)
	auth.GET("/needs/:id", h.GetNeed)
	auth.PUT("/needs/:id", h.UpdateNeed)
	auth.DELETE("/needs/:id", h.DeleteNeed)

	// ПОЛЬЗОВАТЕЛИ — только админ
	auth.POST("/users", middleware.RequireRole(models.RoleAdmin), h.CreateUser)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
