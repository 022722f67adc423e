package main

import (
	"log"
	"net/http"

	"grove/internal/config"
	"grove/internal/db"
	"grove/internal/graph"
	"grove/internal/kv"
	"grove/internal/router"
	"grove/internal/services"
	"grove/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	sessredis "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const tenYears = 60 * 60 * 24 * 365 * 10

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()

	// Initialize Database
	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis (reset tokens)
	rdb, err := kv.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// CORS: only the configured origin may call with credentials
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Setup Sessions (redis-backed cookie sessions)
	sessionStore, err := sessredis.NewStore(10, "tcp", cfg.RedisAddr, "", cfg.RedisPassword, []byte(cfg.SessionSecret))
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   tenYears,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Prod,
	})
	r.Use(sessions.Sessions(cfg.SessionCookie, sessionStore))

	// Wire stores and services
	resolver := &graph.Resolver{
		Users:       store.NewUserStore(gdb),
		Posts:       store.NewPostStore(gdb),
		Votes:       store.NewVoteStore(gdb),
		Tokens:      services.NewTokenService(rdb),
		Mail:        services.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom),
		FrontendURL: cfg.FrontendURL,
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	router.RegisterRoutes(r, schema, resolver)

	log.Printf("Grove server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
