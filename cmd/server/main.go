package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	config "github.com/jaydeadlondon/mini-twitter/configs"
	"github.com/jaydeadlondon/mini-twitter/internal/api/handlers"
	"github.com/jaydeadlondon/mini-twitter/internal/api/middleware"
	"github.com/jaydeadlondon/mini-twitter/internal/db"
	"github.com/jaydeadlondon/mini-twitter/internal/ratelimit"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
	"github.com/jaydeadlondon/mini-twitter/internal/service"
	"github.com/jaydeadlondon/mini-twitter/internal/storage"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	database, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(database)

	if err := database.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	counter, err := ratelimit.NewRedisCounter(cfg.RedisURI)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer counter.Close()
	limiter := ratelimit.NewLimiter(counter)

	blobStore, localDir, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up media storage: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(database)
	followRepo := repository.NewFollowRepository(database)
	postRepo := repository.NewPostRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	likeRepo := repository.NewLikeRepository(database)
	mediaRepo := repository.NewMediaRepository(database)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	followService := service.NewFollowService(userRepo, followRepo)
	postService := service.NewPostService(database, userRepo, postRepo, commentRepo, likeRepo, mediaRepo, blobStore)
	feedService := service.NewFeedService(followRepo, postRepo, mediaRepo, blobStore)
	mediaService := service.NewMediaService(mediaRepo, blobStore)

	authMiddleware := middleware.NewAuthMiddleware(cfg.SecretKey)

	auth := handlers.NewAuthHandler(cfg.SecretKey, authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)

	comment := handlers.NewCommentHandler(postService)
	app.Get("/posts/:id/comments", comment.List)

	feed := handlers.NewFeedHandler(feedService)
	app.Get("/search", feed.Search)

	if localDir != "" {
		app.Static("/static", localDir)
	}

	authed := app.Group("", authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	authed.Get("/users/me", user.Me)

	follow := handlers.NewFollowHandler(followService)
	authed.Post("/users/:username/follow", follow.Follow)

	post := handlers.NewPostHandler(postService, limiter)
	authed.Post("/posts", post.CreatePost)
	authed.Post("/posts/:id/like", post.Like)
	authed.Delete("/posts/:id/like", post.Unlike)
	authed.Delete("/posts/:id", post.Remove)

	authed.Post("/posts/:id/comments", comment.Create)

	authed.Get("/feed", feed.GetFeed)

	media := handlers.NewMediaHandler(mediaService)
	authed.Post("/media/upload", media.Upload)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ListenAddr)

	gracefulShutdown(app, database)
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, string, error) {
	if cfg.StorageBackend == "r2" {
		store, err := storage.NewR2Store(cfg.R2.AccountID, cfg.R2.AccessKey, cfg.R2.SecretKey, cfg.R2.BucketName, cfg.R2.PublicURL)
		return store, "", err
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
