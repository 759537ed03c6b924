package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/store"
	"github.com/Weruh/kujuana/utils"
)

// UserProfileService handles registration, login, and profile CRUD.
type UserProfileService struct {
	Profiles store.ProfileStore
	Now      store.Clock
}

func (ups *UserProfileService) now() time.Time {
	if ups.Now != nil {
		return ups.Now()
	}
	return time.Now()
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Age         int                `json:"age"`
	Gender      string             `json:"gender"`
	Location    models.Location    `json:"location"`
	Occupation  string             `json:"occupation"`
	Interests   []string           `json:"interests"`
	Bio         string             `json:"bio"`
	Goals       []string           `json:"goals"`
	Preferences models.Preferences `json:"preferences"`
}

// Register creates a profile with hashed credentials and preference
// defaults. Duplicate emails are rejected with a conflict.
func (ups *UserProfileService) Register(ctx context.Context, input RegisterInput) (*models.UserProfile, error) {
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.Age == 0 || input.Gender == "" {
		return nil, utils.BadRequest("Email, password, first name, age, and gender are required")
	}

	email := strings.ToLower(input.Email)
	if _, err := ups.Profiles.GetByEmail(ctx, email); err == nil {
		return nil, utils.Conflict("Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	prefs := input.Preferences
	if len(prefs.AgeRange) != 2 {
		prefs.AgeRange = []int{22, 55}
	}
	if prefs.LocationRadiusKm == 0 {
		prefs.LocationRadiusKm = 300
	}
	if prefs.Gender == "" {
		if input.Gender == "male" {
			prefs.Gender = "female"
		} else {
			prefs.Gender = "male"
		}
	}

	now := ups.now()
	profile := models.UserProfile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Age:          input.Age,
		Gender:       input.Gender,
		Location:     input.Location,
		Occupation:   input.Occupation,
		Interests:    input.Interests,
		Bio:          input.Bio,
		Goals:        input.Goals,
		Preferences:  prefs,
		Badges:       []string{},
		Plan:         "free",
		PhotoURLs:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ups.Profiles.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return &profile, nil
}

// Authenticate checks an email/password pair and returns the profile.
func (ups *UserProfileService) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	if email == "" || password == "" {
		return nil, utils.BadRequest("Email and password are required")
	}
	profile, err := ups.Profiles.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, utils.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}
	return profile, nil
}

// Get fetches a profile by id.
func (ups *UserProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := ups.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// ProfileUpdate carries the mutable profile fields. Pointers
// distinguish "leave alone" from "set to zero value".
type ProfileUpdate struct {
	FirstName   *string             `json:"firstName"`
	LastName    *string             `json:"lastName"`
	Age         *int                `json:"age"`
	Gender      *string             `json:"gender"`
	Location    *models.Location    `json:"location"`
	Occupation  *string             `json:"occupation"`
	Interests   *[]string           `json:"interests"`
	Bio         *string             `json:"bio"`
	Goals       *[]string           `json:"goals"`
	Preferences *models.Preferences `json:"preferences"`
	PhotoURLs   *[]string           `json:"photoUrls"`
}

// Update applies the allowed fields only and bumps updatedAt. Identity
// fields (email, password hash, plan) are not updatable here.
func (ups *UserProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := ups.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		profile.LastName = *update.LastName
	}
	if update.Age != nil {
		profile.Age = *update.Age
	}
	if update.Gender != nil {
		profile.Gender = *update.Gender
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.Occupation != nil {
		profile.Occupation = *update.Occupation
	}
	if update.Interests != nil {
		profile.Interests = *update.Interests
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Goals != nil {
		profile.Goals = *update.Goals
	}
	if update.Preferences != nil {
		profile.Preferences = *update.Preferences
	}
	if update.PhotoURLs != nil {
		profile.PhotoURLs = *update.PhotoURLs
	}
	profile.UpdatedAt = ups.now()

	if err := ups.Profiles.Put(ctx, *profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return profile, nil
}

// ChecklistItem is one onboarding step and whether it is done.
type ChecklistItem struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// OnboardingChecklist reports profile completeness for the owner.
type OnboardingChecklist struct {
	Checklist      []ChecklistItem `json:"checklist"`
	CompletionRate int             `json:"completionRate"`
}

func (ups *UserProfileService) Onboarding(ctx context.Context, userID string) (*OnboardingChecklist, error) {
	profile, err := ups.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	hasPrefs := profile.Preferences.Gender != "" || len(profile.Preferences.AgeRange) == 2
	items := []ChecklistItem{
		{Key: "bio", Label: "Share a short bio", Completed: profile.Bio != ""},
		{Key: "photoUrls", Label: "Add at least one photo", Completed: len(profile.PhotoURLs) > 0},
		{Key: "interests", Label: "Select three or more interests", Completed: len(profile.Interests) >= 3},
		{Key: "goals", Label: "Share your relationship goals", Completed: len(profile.Goals) > 0},
		{Key: "preferences", Label: "Set your match preferences", Completed: hasPrefs},
	}

	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	return &OnboardingChecklist{
		Checklist:      items,
		CompletionRate: done * 100 / len(items),
	}, nil
}
