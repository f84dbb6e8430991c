package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Aslan2004/Social_Network/internal/config"
	"github.com/Aslan2004/Social_Network/internal/database"
	"github.com/Aslan2004/Social_Network/internal/handlers"
	"github.com/Aslan2004/Social_Network/internal/repository"
	cronjobs "github.com/Aslan2004/Social_Network/internal/scheduler"
	"github.com/Aslan2004/Social_Network/internal/services"
	"github.com/Aslan2004/Social_Network/pkg/logger"
	"github.com/Aslan2004/Social_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("Index creation error: %v", err)
	}
	cancel()

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postRepo := repository.NewPostRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	friendService := services.NewFriendService(friendRepo, userRepo)
	postService := services.NewPostService(postRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	friendHandler := handlers.NewFriendHandler(friendService)
	postHandler := handlers.NewPostHandler(postService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// Auth routes
	router.HandleFunc("/api/auth/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/api/auth/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes (profiles and the friend request workflow)
	protectedUserRoutes := router.PathPrefix("/api/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedUserRoutes.HandleFunc("", userHandler.GetUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friend-request", friendHandler.SendFriendRequestHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/friend-requests/pending", friendHandler.GetPendingRequestsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friend-requests/sent", friendHandler.GetSentRequestsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friend-request/{requestId}/accept", friendHandler.AcceptFriendRequestHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/friend-request/{requestId}/reject", friendHandler.RejectFriendRequestHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/friends/{friendId}", friendHandler.RemoveFriendHandler).Methods("DELETE")
	protectedUserRoutes.HandleFunc("/{id}/friends", friendHandler.GetFriendsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")

	// Post routes: reads are public, writes require auth
	router.HandleFunc("/api/posts", postHandler.GetPostsHandler).Methods("GET")
	router.HandleFunc("/api/posts/user/{userId}", postHandler.GetPostsByUserHandler).Methods("GET")
	router.HandleFunc("/api/posts/{id}", postHandler.GetPostHandler).Methods("GET")

	protectedPostRoutes := router.PathPrefix("/api/posts").Subrouter()
	protectedPostRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedPostRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedPostRoutes.HandleFunc("", postHandler.CreatePostHandler).Methods("POST")
	protectedPostRoutes.HandleFunc("/{id}", postHandler.UpdatePostHandler).Methods("PUT")
	protectedPostRoutes.HandleFunc("/{id}", postHandler.DeletePostHandler).Methods("DELETE")
	protectedPostRoutes.HandleFunc("/{id}/like", postHandler.ToggleLikeHandler).Methods("POST")
	protectedPostRoutes.HandleFunc("/{id}/comments", postHandler.AddCommentHandler).Methods("POST")
	protectedPostRoutes.HandleFunc("/{id}/comments/{commentId}", postHandler.DeleteCommentHandler).Methods("DELETE")

	router.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background maintenance
	cronjobs.StartMaintenanceJobs(friendService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
