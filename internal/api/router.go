package api

import (
	"net/http"

	"uni-meet/internal/middleware"
	"uni-meet/internal/model"
	"uni-meet/internal/repository"
	"uni-meet/internal/service"
	"uni-meet/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers registered by NewRouter.
type Handlers struct {
	Auth   *AuthHandler
	Clubs  *ClubHandler
	Events *EventHandler
}

// NewHandlers wires repositories and services over db.DB.
func NewHandlers() *Handlers {
	userRepo := repository.NewUserRepository()
	clubRepo := repository.NewClubRepository()
	memberRepo := repository.NewClubMemberRepository()
	eventRepo := repository.NewEventRepository()

	return &Handlers{
		Auth:   NewAuthHandler(service.NewAuthService(userRepo)),
		Clubs:  NewClubHandler(service.NewClubService(clubRepo, memberRepo)),
		Events: NewEventHandler(service.NewEventService(eventRepo, clubRepo, memberRepo, userRepo)),
	}
}

// NewRouter 创建Gin引擎并注册全部路由
func NewRouter(cfg config.Config, h *Handlers) *gin.Engine {
	r := gin.New()
	// 前端使用 /api/Events 这样的大小写
	r.RedirectFixedPath = true

	r.Use(middleware.GinZapLogger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Location"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerRoutes(r.Group("/api"), h)
	registerRoutes(r.Group(""), h)
	return r
}

func registerRoutes(g *gin.RouterGroup, h *Handlers) {
	auth := middleware.AuthMiddleware()
	managers := middleware.RequireRoles(model.RoleManager, model.RoleAdmin)

	// 公开路由
	g.POST("/auth/register", h.Auth.Register)
	g.POST("/auth/login", h.Auth.Login)

	g.GET("/clubs", h.Clubs.ListClubs)
	g.GET("/clubs/with-following", auth, h.Clubs.ListClubsWithFollowing)
	g.GET("/clubs/joined", auth, h.Clubs.ListJoined)
	g.POST("/clubs/:id/follow", auth, h.Clubs.Follow)
	g.DELETE("/clubs/:id/follow", auth, h.Clubs.Unfollow)

	g.GET("/events", h.Events.ListEvents)
	g.GET("/events/upcoming", auth, h.Events.Upcoming)
	g.GET("/events/feed", auth, h.Events.Feed)
	g.GET("/events/:id", h.Events.GetEvent)
	g.POST("/events", auth, managers, h.Events.CreateEvent)
	g.PUT("/events/:id", auth, managers, h.Events.UpdateEvent)
	g.DELETE("/events/:id", auth, managers, h.Events.CancelEvent)
}
