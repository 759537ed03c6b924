package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/store"
)

// DefaultSuggestionLimit caps the deck when the client does not ask
// for a specific size.
const DefaultSuggestionLimit = 16

// Scoring weights for the suggestion ranking.
const (
	sharedInterestWeight = 10
	sameCountryBonus     = 15
	sharedGoalsBonus     = 20
	ageProximityCeiling  = 10
	recencyCeiling       = 12
	recencyDecayPerYear  = 2
)

// Suggestion is a candidate profile with its computed score attached.
type Suggestion struct {
	models.UserProfile
	Score int `json:"score"`
}

// SuggestionService ranks candidate profiles for a user's swipe deck.
type SuggestionService struct {
	Profiles store.ProfileStore
	Swipes   store.SwipeLedger
	Cache    *SuggestionCache
	Now      store.Clock
}

func (s *SuggestionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Suggest returns up to limit candidates for userID, best score first.
// The pipeline excludes the user, anyone they already swiped (any
// decision), and anyone failing the gender or age preference, then
// scores and stably sorts the rest.
func (s *SuggestionService) Suggest(ctx context.Context, userID string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	if cached, ok := s.Cache.Get(ctx, userID, limit); ok {
		return cached, nil
	}

	me, err := s.Profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}

	swipes, err := s.Swipes.BySwiper(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipes for %s: %w", userID, err)
	}
	swiped := make(map[string]struct{}, len(swipes))
	for _, ev := range swipes {
		swiped[ev.TargetID] = struct{}{}
	}

	candidates, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	minAge, maxAge := me.Preferences.AgeRangeOrDefault()
	now := s.now()

	var suggestions []Suggestion
	for _, candidate := range candidates {
		if candidate.ID == userID {
			continue
		}
		if _, done := swiped[candidate.ID]; done {
			continue
		}
		if !passesGenderPreference(candidate, me.Preferences) {
			continue
		}
		if candidate.Age < minAge || candidate.Age > maxAge {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			UserProfile: candidate.Public(),
			Score:       buildMatchScore(*me, candidate, now),
		})
	}

	// Stable: candidates with equal scores keep store order.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	s.Cache.Set(ctx, userID, limit, suggestions)
	return suggestions, nil
}

func passesGenderPreference(candidate models.UserProfile, prefs models.Preferences) bool {
	if prefs.Gender == "" || prefs.Gender == "any" {
		return true
	}
	return candidate.Gender == prefs.Gender
}

// buildMatchScore is the weighted sum behind the ranking: shared
// interests, same country, overlapping goals, age proximity, and how
// recently the candidate touched their profile.
func buildMatchScore(me, candidate models.UserProfile, now time.Time) int {
	score := 0

	score += countShared(me.Interests, candidate.Interests) * sharedInterestWeight

	if me.Location.Country != "" && me.Location.Country == candidate.Location.Country {
		score += sameCountryBonus
	}

	if countShared(me.Goals, candidate.Goals) > 0 {
		score += sharedGoalsBonus
	}

	ageDiff := me.Age - candidate.Age
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	if bonus := ageProximityCeiling - ageDiff; bonus > 0 {
		score += bonus
	}

	// Missing updatedAt means no recency bonus, not an error.
	if !candidate.UpdatedAt.IsZero() {
		if bonus := recencyCeiling - recencyDecayPerYear*yearsBetween(now, candidate.UpdatedAt); bonus > 0 {
			score += bonus
		}
	}

	return score
}

func countShared(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range a {
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}

// yearsBetween counts whole calendar years from earlier to later,
// rounding down when the anniversary has not passed yet.
func yearsBetween(later, earlier time.Time) int {
	years := later.Year() - earlier.Year()
	if later.Month() < earlier.Month() ||
		(later.Month() == earlier.Month() && later.Day() < earlier.Day()) {
		years--
	}
	return years
}
