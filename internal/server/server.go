package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/config"
	"github.com/emilythestrangee/reddit-lite/internal/database"
	"github.com/emilythestrangee/reddit-lite/internal/handlers"
	"github.com/emilythestrangee/reddit-lite/internal/middleware"
	"github.com/emilythestrangee/reddit-lite/internal/session"
	"github.com/emilythestrangee/reddit-lite/internal/store"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	store   *store.Store
	tokens  *session.Tokens
	handler *handlers.Handler
	log     *slog.Logger
}

// New wires the handlers over an open database.
func New(cfg *config.Config, db database.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	st := store.New(db.GetDB())
	tokens := session.NewTokens(cfg.JWT.Secret, cfg.TokenTTL)
	return &Server{
		cfg:     cfg,
		db:      db,
		store:   st,
		tokens:  tokens,
		handler: handlers.NewHandler(st, tokens, logger),
		log:     logger,
	}
}

// HTTPServer builds the *http.Server listening on cfg.Port
func (s *Server) HTTPServer() *http.Server {
	s.log.Info("server configured", "port", s.cfg.Port, "mode", gin.Mode())
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAll(s.cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.health)

	optional := middleware.OptionalAuth(s.tokens, s.store)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Pages; a valid token personalises them
		api.GET("/home", optional, s.handler.Community.GetHome)
		api.GET("/communities", s.handler.Community.GetCommunities)
		api.GET("/communities/:name", optional, s.handler.Community.GetFeed)
		api.GET("/users/:username", optional, s.handler.User.GetUserProfile)

		// Posts and comments (public)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.GET("/posts/:id/comments", s.handler.Comment.GetComments)
		api.POST("/posts/:id/comments", s.handler.Comment.CreateComment)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.tokens, s.store))
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.POST("/communities", s.handler.Community.CreateCommunity)
			protected.POST("/communities/:name/posts", s.handler.Post.CreatePost)
			protected.POST("/communities/:name/subscription", s.handler.Community.ToggleSubscription)
			protected.POST("/posts/:id/upvote", s.handler.Post.UpvotePost)
		}
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	db := s.db.Health()
	status := http.StatusOK
	if db["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": db["status"], "database": db})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// allowsAll reports a wildcard origin list, which browsers refuse to pair
// with credentials.
func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// Store exposes the forum store, e.g. for seeding at startup.
func (s *Server) Store() *store.Store {
	return s.store
}
