package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/config"
	"github.com/iamasit07/connect4/internal/events"
	"github.com/iamasit07/connect4/internal/service/cleanup"
	"github.com/iamasit07/connect4/internal/service/game"
	transportHttp "github.com/iamasit07/connect4/internal/transport/http"
	"github.com/iamasit07/connect4/internal/transport/http/middleware"
	"github.com/iamasit07/connect4/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 1. Notifiers: websocket watchers always, Redis feed when configured
	connManager := websocket.NewConnectionManager()
	notifiers := game.Notifiers{connManager}

	if cfg.RedisURL != "" {
		client, err := events.Connect(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Running without the board feed.", err)
		} else {
			defer client.Close()
			notifiers = append(notifiers, events.NewRedisPublisher(client, cfg.RedisChannelPrefix))
		}
	}

	// 2. Games
	sessionManager := game.NewSessionManager(game.Colors{
		Player1: cfg.Player1Color,
		Player2: cfg.Player2Color,
	}, notifiers)

	cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.IdleTimeout).Start(ctx)

	// 3. Handlers
	gameHandler := transportHttp.NewGameHandler(sessionManager, cfg.BoardWidth, cfg.BoardHeight, connManager)
	wsHandler := websocket.NewHandler(connManager, sessionManager, middleware.OriginChecker(cfg.AllowedOrigins))

	// 4. Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	gameHandler.RegisterRoutes(router)
	router.GET("/ws/:id", wsHandler.HandleWebSocket)

	// Serve the board UI if one is shipped next to the binary
	if _, err := os.Stat("./static"); err == nil {
		router.Static("/assets", "./static/assets")
		router.GET("/", func(c *gin.Context) {
			c.File("./static/index.html")
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (default board %dx%d)", cfg.Port, cfg.BoardWidth, cfg.BoardHeight)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
