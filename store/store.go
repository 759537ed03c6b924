// Package store defines the persistence boundary of the matching
// subsystem. Services depend on these interfaces only; production runs
// on the DynamoDB adapter, tests on the in-memory one.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Weruh/kujuana/models"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

// ProfileStore is CRUD over user profiles.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	// List returns all profiles in stable insertion order. Suggestion
	// ranking relies on that order for deterministic tie-breaking.
	List(ctx context.Context) ([]models.UserProfile, error)
	Put(ctx context.Context, profile models.UserProfile) error
}

// SwipeLedger is the append-only log of swipe events.
type SwipeLedger interface {
	Append(ctx context.Context, event models.SwipeEvent) error
	// BySwiper returns every event the given user has recorded.
	BySwiper(ctx context.Context, swiperID string) ([]models.SwipeEvent, error)
	// HasLike reports whether swiperID has ever recorded a plain "like"
	// toward targetID. Superlikes do not count; see MatchService.
	HasLike(ctx context.Context, swiperID, targetID string) (bool, error)
}

// ThreadStore keys match threads by the unordered member pair.
type ThreadStore interface {
	GetByID(ctx context.Context, id string) (*models.MatchThread, error)
	FindByMembers(ctx context.Context, a, b string) (*models.MatchThread, error)
	ListByMember(ctx context.Context, userID string) ([]models.MatchThread, error)
	Put(ctx context.Context, thread models.MatchThread) error
}

// Clock lets tests pin time; production uses time.Now.
type Clock func() time.Time
