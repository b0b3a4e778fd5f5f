package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pcbtrack/config"
	"pcbtrack/database"
	"pcbtrack/handlers"
	"pcbtrack/logger"
	"pcbtrack/middleware"
	"pcbtrack/models"
	"pcbtrack/repositories"
	"pcbtrack/services"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.Log.Level)

	if err := database.InitDB(&cfg.Database); err != nil {
		log.Fatalf("init database failed: %v", err)
	}
	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.UserSetting{},
		&models.Project{},
		&models.ProjectComponent{},
		&models.ProjectRequirement{},
		&models.Component{},
		&models.Collaboration{},
		&models.Share{},
		&models.UploadSession{},
		&models.StatusOption{},
		&models.SourceOption{},
		&models.BoardTypeOption{},
	); err != nil {
		log.Fatalf("migrate database failed: %v", err)
	}

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.ThumbnailDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create storage dir %s failed: %v", dir, err)
		}
	}

	repos := repositories.BuildContainer(database.DB, database.RedisClient)
	container := services.BuildContainer(repos)
	handlers.SetServices(container)

	// Sweep stale upload sessions at startup and every hour after.
	go container.Cleanup.Run(context.Background(), time.Hour)

	router := setupRouter()
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupRouter() *gin.Engine {
	if !logger.IsDebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger())

	api := router.Group("/api")
	api.GET("/health", handlers.Health)
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", handlers.Login)

	// Anonymous share viewer endpoints.
	share := api.Group("/shares/:shareId")
	{
		share.GET("", handlers.ResolveShare)
		share.POST("/verify", handlers.VerifySharePassword)
		share.GET("/content", handlers.ViewShare)
		share.GET("/file", handlers.DownloadShareFile)
		share.GET("/zip", handlers.DownloadShareZip)
		share.GET("/thumbnail", handlers.ShareFileThumbnail)
	}

	authed := api.Group("", middleware.AuthMiddleware())
	{
		authed.GET("/profile", handlers.Profile)
		authed.POST("/auth/password", handlers.ChangePassword)
		authed.GET("/settings", handlers.GetSettings)
		authed.PUT("/settings", handlers.UpdateSettings)
		authed.GET("/stats", handlers.UserStats)

		authed.GET("/projects", handlers.ListProjects)
		authed.POST("/projects", handlers.CreateProject)
		authed.GET("/projects/:id", handlers.GetProject)
		authed.PUT("/projects/:id", handlers.UpdateProject)
		authed.DELETE("/projects/:id", handlers.DeleteProject)

		authed.GET("/projects/:id/files", handlers.ProjectFileTree)
		authed.GET("/projects/:id/files/download", handlers.DownloadProjectFile)
		authed.GET("/projects/:id/files/zip", handlers.DownloadProjectZip)
		authed.GET("/projects/:id/files/thumbnail", handlers.ProjectFileThumbnail)

		authed.POST("/projects/:id/uploads", handlers.StartUpload)
		authed.POST("/uploads/:sessionId/files", handlers.UploadFiles)
		authed.POST("/uploads/:sessionId/complete", handlers.CompleteUpload)
		authed.DELETE("/uploads/:sessionId", handlers.CancelUpload)

		authed.GET("/projects/:id/collaborators", handlers.ListCollaborators)
		authed.POST("/projects/:id/collaborators", handlers.AddCollaborator)
		authed.PUT("/projects/:id/collaborators/:collabId", handlers.UpdateCollaboratorPermission)
		authed.DELETE("/projects/:id/collaborators/:userId", handlers.RemoveCollaborator)
		authed.GET("/projects/:id/collaborators/available", handlers.AvailableCollaborators)

		authed.POST("/projects/:id/share", handlers.CreateShare)
		authed.GET("/projects/:id/share", handlers.GetProjectShare)
		authed.DELETE("/shares/:shareId", handlers.CancelShare)

		authed.GET("/catalog/options", handlers.CatalogOptions)
		authed.GET("/components", handlers.ListComponents)
		authed.POST("/components", handlers.CreateComponent)
		authed.PUT("/components/:id", handlers.UpdateComponent)
		authed.DELETE("/components/:id", handlers.DeleteComponent)
	}

	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", handlers.AdminListUsers)
		admin.POST("/users", handlers.AdminCreateUser)
		admin.PUT("/users/:id", handlers.AdminUpdateUser)
		admin.POST("/users/:id/password", handlers.AdminResetPassword)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.GET("/stats", handlers.AdminStats)

		admin.POST("/catalog/statuses", handlers.CreateStatusOption)
		admin.PUT("/catalog/statuses/:id", handlers.UpdateStatusOption)
		admin.DELETE("/catalog/statuses/:id", handlers.DeleteStatusOption)
		admin.POST("/catalog/sources", handlers.CreateSourceOption)
		admin.PUT("/catalog/sources/:id", handlers.UpdateSourceOption)
		admin.DELETE("/catalog/sources/:id", handlers.DeleteSourceOption)
		admin.POST("/catalog/board-types", handlers.CreateBoardTypeOption)
		admin.PUT("/catalog/board-types/:id", handlers.UpdateBoardTypeOption)
		admin.DELETE("/catalog/board-types/:id", handlers.DeleteBoardTypeOption)
	}

	return router
}
