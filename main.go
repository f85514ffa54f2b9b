package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"ReciclaBackend/database"
	"ReciclaBackend/handlers"
	"ReciclaBackend/middleware"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDB()

	// Initialize JWT and token revocation
	middleware.InitJWT()
	middleware.InitRevocationList()

	// Initialize rate limiter (100 requests per minute)
	middleware.InitRateLimiter(100)

	// Create router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/cadastro", handlers.Signup).Methods("POST")
	router.HandleFunc("/login/Doador", handlers.LoginDonor).Methods("POST")
	router.HandleFunc("/login/Coletor", handlers.LoginCollector).Methods("POST")

	// Authenticated routes
	auth := router.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware)
	auth.HandleFunc("/logout", handlers.Logout).Methods("POST")
	auth.HandleFunc("/me", handlers.GetMe).Methods("GET")
	auth.HandleFunc("/chat/enviar", handlers.SendMessage).Methods("POST")
	auth.HandleFunc("/chat/mensagens/{destinatario_id}", handlers.ListMessages).Methods("GET")
	auth.HandleFunc("/notificacoes", handlers.ListNotifications).Methods("GET")
	auth.HandleFunc("/notificacoes/{id}/visualizar", handlers.MarkNotificationSeen).Methods("POST")
	auth.HandleFunc("/historico", handlers.ListHistory).Methods("GET")
	auth.HandleFunc("/entregas", handlers.ListDeliveries).Methods("GET")

	// Donor routes
	donorRoutes := auth.PathPrefix("/doador").Subrouter()
	donorRoutes.Use(middleware.DonorOnly)
	donorRoutes.HandleFunc("/coletor/criar", handlers.CreateCollection).Methods("POST")

	// Collector routes (no shared path prefix, guarded per route)
	auth.Handle("/coletas/disponiveis",
		middleware.CollectorOnly(http.HandlerFunc(handlers.ListAvailableCollections))).Methods("GET")
	auth.Handle("/coleta/aceita/{id}",
		middleware.CollectorOnly(http.HandlerFunc(handlers.AcceptCollection))).Methods("POST")

	// Apply logging and rate limiting
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RateLimitMiddleware)

	// Configure CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: getAllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	handler := corsHandler.Handler(router)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"Recicla Backend"}`))
}

func getAllowedOrigins() []string {
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		// Default allowed origins for development
		return []string{"*"}
	}

	var result []string
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
