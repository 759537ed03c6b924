package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/utils"
)

// ProfileController handles the owner's profile endpoints.
type ProfileController struct {
	Profiles *services.UserProfileService
}

func NewProfileController(profiles *services.UserProfileService) *ProfileController {
	return &ProfileController{Profiles: profiles}
}

// GetMe handles GET /api/profile/me
func (pc *ProfileController) GetMe(w http.ResponseWriter, r *http.Request) {
	profile, err := pc.Profiles.Get(r.Context(), middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, profile.Sanitized())
}

// UpdateMe handles PUT /api/profile/me
func (pc *ProfileController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request payload"))
		return
	}

	profile, err := pc.Profiles.Update(r.Context(), middleware.UserID(r), update)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, profile.Sanitized())
}

// Onboarding handles GET /api/profile/onboarding
func (pc *ProfileController) Onboarding(w http.ResponseWriter, r *http.Request) {
	checklist, err := pc.Profiles.Onboarding(r.Context(), middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, checklist)
}
