package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/utils"
)

// MatchController handles HTTP requests for the matching subsystem.
type MatchController struct {
	Suggestions *services.SuggestionService
	Matches     *services.MatchService
	Chat        *services.ChatService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(suggestions *services.SuggestionService, matches *services.MatchService, chat *services.ChatService) *MatchController {
	return &MatchController{Suggestions: suggestions, Matches: matches, Chat: chat}
}

// GetSuggestions handles GET /api/match/suggestions?limit=N
func (mc *MatchController) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	suggestions, err := mc.Suggestions.Suggest(r.Context(), middleware.UserID(r), limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []services.Suggestion{}
	}
	utils.WriteSuccess(w, http.StatusOK, suggestions)
}

// Swipe handles POST /api/match/swipe
func (mc *MatchController) Swipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TargetID string `json:"targetId"`
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request payload"))
		return
	}
	if request.TargetID == "" {
		utils.WriteError(w, utils.BadRequest("targetId and decision are required"))
		return
	}
	decision, err := models.ParseDecision(request.Decision)
	if err != nil {
		utils.WriteError(w, utils.BadRequest("targetId and decision are required"))
		return
	}

	result, err := mc.Matches.RecordSwipe(r.Context(), middleware.UserID(r), request.TargetID, decision)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// ListMine handles GET /api/match/mine
func (mc *MatchController) ListMine(w http.ResponseWriter, r *http.Request) {
	threads, err := mc.Matches.ListThreads(r.Context(), middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, threads)
}

// Stats handles GET /api/match/stats
func (mc *MatchController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := mc.Matches.Stats(r.Context(), middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, stats)
}

// SendMessage handles POST /api/match/{matchId}/messages
func (mc *MatchController) SendMessage(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var input services.MessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request payload"))
		return
	}

	thread, message, err := mc.Chat.AppendMessage(r.Context(), matchID, middleware.UserID(r), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"match":   thread,
		"message": message,
	})
}
