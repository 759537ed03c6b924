package routes

import (
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/Weruh/kujuana/controllers"
	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/services"
)

// RegisterAuthRoutes sets up registration and login under /api/auth.
// Both endpoints sit behind a per-IP rate limit.
func RegisterAuthRoutes(r *mux.Router, profileService *services.UserProfileService) {
	controller := controllers.NewAuthController(profileService)
	limiter := middleware.NewRateLimiter(rate.Limit(1), 10)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.Use(limiter.Limit)

	authRouter.HandleFunc("/register", controller.Register).Methods("POST")
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")
}
