package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Weruh/kujuana/controllers"
	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/store"
)

// RegisterProfileRoutes sets up the owner's profile endpoints under /api/profile
func RegisterProfileRoutes(r *mux.Router, profiles store.ProfileStore, profileService *services.UserProfileService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/api/profile").Subrouter()
	profileRouter.Use(func(next http.Handler) http.Handler {
		return middleware.RequireAuth(profiles, next)
	})

	profileRouter.HandleFunc("/me", controller.GetMe).Methods("GET")
	profileRouter.HandleFunc("/me", controller.UpdateMe).Methods("PUT")
	profileRouter.HandleFunc("/onboarding", controller.Onboarding).Methods("GET")
}
