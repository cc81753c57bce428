package main

import (
	"log"
	"net/http"
	"os"

	"authbox/handlers"
	"authbox/middleware"
	"authbox/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment: ", os.Getenv("APP_ENV"))

	pgDSN := os.Getenv("DATABASE_URL")

	// Initialize the database connection pool
	dbPool, pgErr := utils.OpenDB(pgDSN)
	if pgErr != nil {
		log.Fatalf("Failed to connect to database: %v", pgErr)
	}
	defer dbPool.Close()

	redisDSN := os.Getenv("REDIS_URL")
	redisPool := utils.OpenRedisPool(redisDSN)
	defer redisPool.Close()

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		handlers.LoginHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		handlers.RegisterHandler(w, r, dbPool)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		handlers.LogoutHandler(w, r, redisPool)
	})
	mux.HandleFunc("/user/me", func(w http.ResponseWriter, r *http.Request) {
		handlers.MeHandler(w, r, dbPool, redisPool)
	})

	// Only the configured frontend origin may call the API cross-origin.
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	handler := middleware.Logging(middleware.CORS(frontendURL)(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start the server
	log.Println("Starting server on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
