package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/Weruh/kujuana/routes"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	// Stores: DynamoDB in production, in-memory for local hacking.
	var (
		profiles store.ProfileStore
		swipes   store.SwipeLedger
		threads  store.ThreadStore
	)
	if os.Getenv("STORE_BACKEND") == "memory" {
		log.Println("Using in-memory stores (STORE_BACKEND=memory)")
		profiles = store.NewMemoryProfiles()
		swipes = store.NewMemorySwipes()
		threads = store.NewMemoryThreads()
	} else {
		log.Println("Initializing DynamoDB client...")
		client := store.InitializeDynamoDBClient()
		profiles = store.NewDynamoProfiles(client)
		swipes = store.NewDynamoSwipes(client)
		threads = store.NewDynamoThreads(client)
		log.Println("DynamoDB client initialized.")
	}

	// Optional Redis cache for suggestion decks.
	var cache *services.SuggestionCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		log.Printf("Using Redis suggestion cache at %s", addr)
		cache = services.NewSuggestionCache(redis.NewClient(&redis.Options{Addr: addr}), 30*time.Second)
	}

	// Initialize Services
	profileService := &services.UserProfileService{Profiles: profiles}
	suggestionService := &services.SuggestionService{Profiles: profiles, Swipes: swipes, Cache: cache}
	matchService := &services.MatchService{Profiles: profiles, Swipes: swipes, Threads: threads, Cache: cache}
	chatService := &services.ChatService{Matches: matchService, Threads: threads}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Printf("Using server port: %s\n", port)

	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"name":    "Kujuana API",
			"version": "1.0.0",
			"slogan":  "Dating with Intention",
			"status":  "online",
		})
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterAuthRoutes(r, profileService)
	routes.RegisterProfileRoutes(r, profiles, profileService)
	routes.RegisterMatchRoutes(r, profiles, suggestionService, matchService, chatService)
	if os.Getenv("S3_BUCKET_NAME") != "" {
		routes.RegisterPhotoRoutes(r, profiles, services.NewPhotoService())
	} else {
		log.Println("S3_BUCKET_NAME not set, photo upload routes disabled")
	}

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), corsHandler))
}
