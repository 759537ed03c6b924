package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Weruh/kujuana/controllers"
	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/store"
)

// RegisterMatchRoutes sets up routes for the matching subsystem under /api/match
func RegisterMatchRoutes(r *mux.Router, profiles store.ProfileStore, suggestions *services.SuggestionService, matches *services.MatchService, chat *services.ChatService) {
	controller := controllers.NewMatchController(suggestions, matches, chat)

	matchRouter := r.PathPrefix("/api/match").Subrouter()
	matchRouter.Use(func(next http.Handler) http.Handler {
		return middleware.RequireAuth(profiles, next)
	})

	matchRouter.HandleFunc("/suggestions", controller.GetSuggestions).Methods("GET")
	matchRouter.HandleFunc("/swipe", controller.Swipe).Methods("POST")
	matchRouter.HandleFunc("/mine", controller.ListMine).Methods("GET")
	matchRouter.HandleFunc("/stats", controller.Stats).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/messages", controller.SendMessage).Methods("POST")
}
