package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Weruh/kujuana/controllers"
	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/store"
)

// RegisterPhotoRoutes sets up presigned photo URL endpoints under /api/photos
func RegisterPhotoRoutes(r *mux.Router, profiles store.ProfileStore, photos *services.PhotoService) {
	controller := controllers.NewPhotoController(photos)

	photoRouter := r.PathPrefix("/api/photos").Subrouter()
	photoRouter.Use(func(next http.Handler) http.Handler {
		return middleware.RequireAuth(profiles, next)
	})

	photoRouter.HandleFunc("/upload-url", controller.UploadURL).Methods("POST")
	photoRouter.HandleFunc("/read-url", controller.ReadURL).Methods("GET")
}
