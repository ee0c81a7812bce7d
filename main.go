package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sudharnayak-be/config"
	"sudharnayak-be/controllers"
	"sudharnayak-be/middlewares"
	"sudharnayak-be/repositories"
	"sudharnayak-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	db, err := config.ConnectDB(cfg.Mongo)
	if err != nil {
		logrus.Fatalf("connect mongodb: %v", err)
	}
	logrus.WithField("database", cfg.Mongo.Database).Info("MongoDB connection established")

	redisClient, err := config.ConnectRedis(cfg.Redis)
	if err != nil {
		logrus.Fatalf("connect redis: %v", err)
	}
	logrus.WithField("addr", cfg.Redis.Addr).Info("Redis connection established")

	userRepo := repositories.NewUserRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	authCtrl := controllers.NewAuthController(userRepo, cfg.JWT)
	issueCtrl := controllers.NewIssueController(issueRepo)
	commentCtrl := controllers.NewCommentController(commentRepo)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r, authCtrl, cfg.JWT.Secret)
	routes.IssueRoutes(r, issueCtrl, cfg.JWT.Secret, redisClient, cfg.RateLimit.KeyPrefix, cfg.RateLimit.DailyIssueLimit)
	routes.CommentRoutes(r, commentCtrl, cfg.JWT.Secret)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Warnf("http shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		logrus.Warnf("redis close: %v", err)
	}
}
