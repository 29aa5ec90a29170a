package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/handler"
	"github.com/messagely/messagely/internal/api/middleware"
	"github.com/messagely/messagely/internal/core/service"
	"github.com/messagely/messagely/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	userService *service.UserService,
	messageService *service.MessageService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)

	// Public routes (no auth required)
	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)

	// Protected routes (auth required)
	authMiddleware := middleware.AuthMiddleware(authService)

	// Users
	users := router.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("", userHandler.List)
		users.GET("/:username", userHandler.Get)
		users.GET("/:username/from", userHandler.MessagesFrom)
		users.GET("/:username/to", userHandler.MessagesTo)
	}

	// Messages
	messages := router.Group("/messages")
	messages.Use(authMiddleware)
	{
		messages.POST("", messageHandler.Send)
		messages.GET("/:id", messageHandler.Get)
		messages.POST("/:id/read", messageHandler.MarkRead)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		slog.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	slog.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
