package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/store"
)

func newProfileFixture(t *testing.T) (*UserProfileService, *store.MemoryProfiles) {
	t.Helper()
	profiles := store.NewMemoryProfiles()
	return &UserProfileService{Profiles: profiles, Now: fixedClock(testNow)}, profiles
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:     "Amina@Example.com",
		Password:  "s3cret-pass",
		FirstName: "Amina",
		Age:       29,
		Gender:    "female",
		Location:  models.Location{City: "Nairobi", Country: "KE"},
	}
}

func TestRegisterDefaults(t *testing.T) {
	svc, _ := newProfileFixture(t)

	profile, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "amina@example.com", profile.Email)
	assert.NotEmpty(t, profile.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", profile.PasswordHash)
	assert.Equal(t, "free", profile.Plan)
	assert.Equal(t, []int{22, 55}, profile.Preferences.AgeRange)
	assert.Equal(t, 300, profile.Preferences.LocationRadiusKm)
	assert.Equal(t, "male", profile.Preferences.Gender)
	assert.Equal(t, testNow, profile.CreatedAt)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newProfileFixture(t)

	input := validRegistration()
	input.Password = ""
	_, err := svc.Register(context.Background(), input)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newProfileFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegistration())
	assertStatus(t, err, http.StatusConflict)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newProfileFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	profile, err := svc.Authenticate(ctx, "amina@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, profile.ID)

	_, err = svc.Authenticate(ctx, "amina@example.com", "wrong")
	assertStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestUpdateAppliesAllowedFieldsOnly(t *testing.T) {
	svc, _ := newProfileFixture(t)
	ctx := context.Background()

	profile, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	svc.Now = fixedClock(testNow.Add(time.Hour))
	bio := "Here with intention"
	interests := []string{"travel", "faith", "music"}
	updated, err := svc.Update(ctx, profile.ID, ProfileUpdate{
		Bio:       &bio,
		Interests: &interests,
	})
	require.NoError(t, err)

	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, interests, updated.Interests)
	assert.Equal(t, profile.Email, updated.Email)
	assert.Equal(t, profile.PasswordHash, updated.PasswordHash)
	assert.True(t, updated.UpdatedAt.After(profile.UpdatedAt))
}

func TestOnboardingChecklist(t *testing.T) {
	svc, _ := newProfileFixture(t)
	ctx := context.Background()

	profile, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	// Fresh profile: only preferences are set (by defaulting).
	checklist, err := svc.Onboarding(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, checklist.CompletionRate)

	bio := "bio"
	goals := []string{"marriage"}
	interests := []string{"travel", "faith", "music"}
	photos := []string{"profile-pics/1.jpg"}
	_, err = svc.Update(ctx, profile.ID, ProfileUpdate{
		Bio: &bio, Goals: &goals, Interests: &interests, PhotoURLs: &photos,
	})
	require.NoError(t, err)

	checklist, err = svc.Onboarding(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, checklist.CompletionRate)
	for _, item := range checklist.Checklist {
		assert.True(t, item.Completed, item.Key)
	}
}
