package app

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/repo"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Issuer  *auth.Issuer
	Revoked auth.RevocationList

	Users      repo.UserRepo
	Tasks      repo.TaskRepo
	Workspaces repo.WorkspaceRepo
	Tags       repo.TagRepo
	Activity   repo.ActivityRepo
	StatsCache service.StatsCache

	// Ping reports storage health; nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewDeps wires the Postgres repos and the Redis-backed stores.
func NewDeps(cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) Deps {
	return Deps{
		Issuer:     auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration()),
		Revoked:    auth.NewRedisRevocations(rdb),
		Users:      repo.NewPGUserRepo(db),
		Tasks:      repo.NewPGTaskRepo(db),
		Workspaces: repo.NewPGWorkspaceRepo(db),
		Tags:       repo.NewPGTagRepo(db),
		Activity:   repo.NewPGActivityRepo(db),
		StatsCache: cache.NewStatsCache(rdb, cfg.Redis.DefaultTTL.Duration()),
		Ping: func(ctx context.Context) error {
			if err := db.Ping(ctx); err != nil {
				return err
			}
			return rdb.Ping(ctx).Err()
		},
	}
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, d Deps) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, d.Ping))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	userSvc := service.NewUserService(d.Users, cfg.Auth.BcryptCost)
	taskSvc := service.NewTaskService(d.Tasks, d.Users, d.Workspaces, d.StatsCache)
	workspaceSvc := service.NewWorkspaceService(d.Workspaces, d.Users, d.StatsCache)
	tagSvc := service.NewTagService(d.Tags)
	activitySvc := service.NewActivityService(d.Tasks, d.Activity)

	authHandler := handlers.NewAuthHandler(d.Issuer, d.Revoked, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireBearer(d.Issuer, d.Revoked))
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/user/me", authHandler.Me)
	registerWorkspaceRoutes(protected, handlers.NewWorkspaceHandler(workspaceSvc, tagSvc))
	registerTaskRoutes(protected, handlers.NewTaskHandler(taskSvc), handlers.NewActivityHandler(activitySvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Taskboard API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config, ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "env": cfg.App.Env, "error": "storage unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
}

func registerWorkspaceRoutes(api *gin.RouterGroup, h *handlers.WorkspaceHandler) {
	api.POST("/workspaces", h.CreateWorkspace)
	api.GET("/workspaces", h.ListWorkspaces)
	api.POST("/workspaces/:id/members", h.AddMember)
	api.POST("/projects", h.CreateProject)
	api.GET("/projects", h.ListProjects)
	api.POST("/projects/:id/milestones", h.CreateMilestone)
	api.POST("/tags", h.CreateTag)
	api.GET("/tags", h.ListTags)
}

// The static /tasks/bulk and /tasks/stats routes take precedence over /tasks/:id.
func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler, a *handlers.ActivityHandler) {
	api.GET("/tasks", h.List)
	api.POST("/tasks", h.Create)
	api.PUT("/tasks/bulk", h.BulkUpdate)
	api.GET("/tasks/stats", h.Stats)
	api.GET("/tasks/:id", h.Get)
	api.PUT("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.POST("/tasks/:id/comments", a.AddComment)
	api.POST("/tasks/:id/time-entries", a.AddTimeEntry)
	api.POST("/tasks/:id/dependencies", a.AddDependency)
}
