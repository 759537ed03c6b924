package store

import (
	"context"
	"strings"
	"sync"

	"github.com/Weruh/kujuana/models"
)

// In-memory adapters, one mutex per collection. The reference
// deployment offers no isolation stronger than one-request-at-a-time,
// so serializing mutations behind a lock preserves its observable
// behavior while staying race-free.

// MemoryProfiles implements ProfileStore over a slice, preserving
// insertion order for deterministic suggestion tie-breaking.
type MemoryProfiles struct {
	mu       sync.Mutex
	profiles []models.UserProfile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{}
}

func (s *MemoryProfiles) GetByID(_ context.Context, id string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryProfiles) GetByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	email = strings.ToLower(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].Email == email {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryProfiles) List(_ context.Context) ([]models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserProfile, len(s.profiles))
	copy(out, s.profiles)
	return out, nil
}

func (s *MemoryProfiles) Put(_ context.Context, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].ID == profile.ID {
			s.profiles[i] = profile
			return nil
		}
	}
	s.profiles = append(s.profiles, profile)
	return nil
}

// MemorySwipes implements SwipeLedger as an append-only slice.
type MemorySwipes struct {
	mu     sync.Mutex
	swipes []models.SwipeEvent
}

func NewMemorySwipes() *MemorySwipes {
	return &MemorySwipes{}
}

func (s *MemorySwipes) Append(_ context.Context, event models.SwipeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swipes = append(s.swipes, event)
	return nil
}

func (s *MemorySwipes) BySwiper(_ context.Context, swiperID string) ([]models.SwipeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SwipeEvent
	for _, ev := range s.swipes {
		if ev.SwiperID == swiperID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *MemorySwipes) HasLike(_ context.Context, swiperID, targetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.swipes {
		if ev.SwiperID == swiperID && ev.TargetID == targetID && ev.Decision == models.DecisionLike {
			return true, nil
		}
	}
	return false, nil
}

// MemoryThreads implements ThreadStore keyed by the unordered pair.
type MemoryThreads struct {
	mu      sync.Mutex
	threads []models.MatchThread
}

func NewMemoryThreads() *MemoryThreads {
	return &MemoryThreads{}
}

func (s *MemoryThreads) GetByID(_ context.Context, id string) (*models.MatchThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.threads {
		if s.threads[i].ID == id {
			t := s.threads[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryThreads) FindByMembers(_ context.Context, a, b string) (*models.MatchThread, error) {
	key := models.PairKeyFor(a, b)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.threads {
		if s.threads[i].PairKey == key {
			t := s.threads[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryThreads) ListByMember(_ context.Context, userID string) ([]models.MatchThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MatchThread
	for i := range s.threads {
		if s.threads[i].HasMember(userID) {
			out = append(out, s.threads[i])
		}
	}
	return out, nil
}

func (s *MemoryThreads) Put(_ context.Context, thread models.MatchThread) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.threads {
		if s.threads[i].ID == thread.ID {
			s.threads[i] = thread
			return nil
		}
	}
	s.threads = append(s.threads, thread)
	return nil
}
