package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/config"
	"newsagency.com/newsroom/internal/middleware"
	"newsagency.com/newsroom/pkg/validator"
	"newsagency.com/newsroom/web"

	authHttp "newsagency.com/newsroom/internal/modules/auth/delivery/http"
	authService "newsagency.com/newsroom/internal/modules/auth/service"

	newspaperHttp "newsagency.com/newsroom/internal/modules/newspaper/delivery/http"
	newspaperRepo "newsagency.com/newsroom/internal/modules/newspaper/repository"
	newspaperService "newsagency.com/newsroom/internal/modules/newspaper/service"

	redactorHttp "newsagency.com/newsroom/internal/modules/redactor/delivery/http"
	redactorRepo "newsagency.com/newsroom/internal/modules/redactor/repository"
	redactorService "newsagency.com/newsroom/internal/modules/redactor/service"

	statHttp "newsagency.com/newsroom/internal/modules/stat/delivery/http"
	statService "newsagency.com/newsroom/internal/modules/stat/service"

	topicHttp "newsagency.com/newsroom/internal/modules/topic/delivery/http"
	topicRepo "newsagency.com/newsroom/internal/modules/topic/repository"
	topicService "newsagency.com/newsroom/internal/modules/topic/service"

	visitRepo "newsagency.com/newsroom/internal/modules/visit/repository"
	visitService "newsagency.com/newsroom/internal/modules/visit/service"
)

type Server struct {
	engine *gin.Engine
}

// Repositories are the storage backends behind the HTTP surface.
type Repositories struct {
	Topics     topicRepo.TopicRepository
	Newspapers newspaperRepo.NewspaperRepository
	Redactors  redactorRepo.RedactorRepository
	Visits     visitRepo.Store
}

// NewServer wires the application against PostgreSQL. Visit counters live in
// Redis when a client is given and in process memory otherwise.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	visits := visitRepo.NewMemoryStore()
	if redisClient != nil {
		visits = visitRepo.NewRedisStore(redisClient, cfg.SessionTTL)
	}

	return newServer(cfg, Repositories{
		Topics:     topicRepo.NewTopicRepository(db),
		Newspapers: newspaperRepo.NewNewspaperRepository(db),
		Redactors:  redactorRepo.NewRedactorRepository(db),
		Visits:     visits,
	})
}

func newServer(cfg *config.Config, repos Repositories) *Server {
	validator.Setup()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	visitSvc := visitService.NewVisitService(repos.Visits)

	authSvc := authService.NewAuthService(repos.Redactors, visitSvc, cfg.SecretKey, cfg.SessionTTL)
	authHandler := authHttp.NewAuthHandler(authSvc, cfg.SessionTTL, cfg.SessionCookieSecure)

	topicSvc := topicService.NewTopicService(repos.Topics)
	topicHandler := topicHttp.NewTopicHandler(topicSvc)

	newspaperSvc := newspaperService.NewNewspaperService(repos.Newspapers, repos.Topics, repos.Redactors)
	newspaperHandler := newspaperHttp.NewNewspaperHandler(newspaperSvc)

	redactorSvc := redactorService.NewRedactorService(repos.Redactors, repos.Newspapers)
	redactorHandler := redactorHttp.NewRedactorHandler(redactorSvc)

	statSvc := statService.NewStatService(repos.Redactors, repos.Newspapers, repos.Topics)
	statHandler := statHttp.NewStatHandler(statSvc, visitSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz"},
	}))

	router.SetHTMLTemplate(template.Must(web.Templates()))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accounts := router.Group("/accounts")
	{
		accounts.GET("/login/", authHandler.LoginForm)
		accounts.POST("/login/", authHandler.Login)
		accounts.POST("/logout/", authHandler.Logout)
	}

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/", statHandler.Index)

		topics := protected.Group("/topics")
		{
			topics.GET("/", topicHandler.List)
			topics.GET("/create/", topicHandler.CreateForm)
			topics.POST("/create/", topicHandler.Create)
			topics.GET("/:id/update/", topicHandler.UpdateForm)
			topics.POST("/:id/update/", topicHandler.Update)
			topics.GET("/:id/delete/", topicHandler.DeleteConfirm)
			topics.POST("/:id/delete/", topicHandler.Delete)
		}

		newspapers := protected.Group("/newspapers")
		{
			newspapers.GET("/", newspaperHandler.List)
			newspapers.GET("/create/", newspaperHandler.CreateForm)
			newspapers.POST("/create/", newspaperHandler.Create)
			newspapers.GET("/:id/", newspaperHandler.Detail)
			newspapers.GET("/:id/update/", newspaperHandler.UpdateForm)
			newspapers.POST("/:id/update/", newspaperHandler.Update)
			newspapers.GET("/:id/delete/", newspaperHandler.DeleteConfirm)
			newspapers.POST("/:id/delete/", newspaperHandler.Delete)
		}

		redactors := protected.Group("/redactors")
		{
			redactors.GET("/", redactorHandler.List)
			redactors.GET("/create/", redactorHandler.CreateForm)
			redactors.POST("/create/", redactorHandler.Create)
			redactors.GET("/:id/", redactorHandler.Detail)
			redactors.GET("/:id/update/", redactorHandler.UpdateForm)
			redactors.POST("/:id/update/", redactorHandler.Update)
			redactors.GET("/:id/delete/", redactorHandler.DeleteConfirm)
			redactors.POST("/:id/delete/", redactorHandler.Delete)
			redactors.GET("/:id/toggle-newspaper/", redactorHandler.ToggleNewspaper)
		}
	}

	return &Server{engine: router}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
