package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	Profiles *services.UserProfileService
}

func NewAuthController(profiles *services.UserProfileService) *AuthController {
	return &AuthController{Profiles: profiles}
}

// slimUser is the subset returned alongside a fresh token.
func slimUser(p *models.UserProfile) map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"email":     p.Email,
		"firstName": p.FirstName,
		"age":       p.Age,
		"gender":    p.Gender,
		"plan":      p.Plan,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request payload"))
		return
	}

	profile, err := ac.Profiles.Register(r.Context(), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	token, err := middleware.GenerateToken(profile.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  slimUser(profile),
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request payload"))
		return
	}

	profile, err := ac.Profiles.Authenticate(r.Context(), request.Email, request.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	token, err := middleware.GenerateToken(profile.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  slimUser(profile),
	})
}
