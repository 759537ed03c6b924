package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/store"
	"github.com/Weruh/kujuana/utils"
)

// MatchService owns the swipe ledger and the pending/matched state
// transition for swipe pairs.
type MatchService struct {
	Profiles store.ProfileStore
	Swipes   store.SwipeLedger
	Threads  store.ThreadStore
	Cache    *SuggestionCache
	Now      store.Clock
}

func (ms *MatchService) now() time.Time {
	if ms.Now != nil {
		return ms.Now()
	}
	return time.Now()
}

// SwipeResult is the response payload for a swipe: the decision echoed
// back, and the thread when the decision was a like (nil otherwise).
type SwipeResult struct {
	Decision models.Decision    `json:"decision"`
	Match    *models.ThreadView `json:"match"`
}

// RecordSwipe appends a swipe event and, for a like, runs match
// detection. The target must exist; duplicate swipes against the same
// target are appended as-is, never deduplicated.
func (ms *MatchService) RecordSwipe(ctx context.Context, swiperID, targetID string, decision models.Decision) (*SwipeResult, error) {
	if _, err := ms.Profiles.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, utils.NotFound("Profile not found")
		}
		return nil, fmt.Errorf("failed to fetch target profile: %w", err)
	}

	event := models.SwipeEvent{
		ID:        uuid.NewString(),
		SwiperID:  swiperID,
		TargetID:  targetID,
		Decision:  decision,
		CreatedAt: ms.now(),
	}
	if err := ms.Swipes.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to append swipe: %w", err)
	}

	// The swiper's deck changed either way.
	ms.Cache.Invalidate(ctx, swiperID)

	result := &SwipeResult{Decision: decision}
	if decision != models.DecisionLike {
		return result, nil
	}

	thread, err := ms.DetectMatch(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	view, err := ms.decorate(ctx, thread)
	if err != nil {
		return nil, err
	}
	result.Match = view
	return result, nil
}

// DetectMatch ensures the pair's thread exists and promotes it to
// matched when the target has already liked the swiper back. Only a
// plain "like" counts as reciprocal; a superlike from the target does
// not satisfy the check. matchedAt is sticky: the first detection wins.
func (ms *MatchService) DetectMatch(ctx context.Context, swiperID, targetID string) (*models.MatchThread, error) {
	thread, err := ms.ensureThread(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}

	reciprocal, err := ms.Swipes.HasLike(ctx, targetID, swiperID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reciprocal like: %w", err)
	}

	now := ms.now()
	if reciprocal {
		if thread.Status != models.ThreadMatched {
			log.Printf("Match detected between %s and %s", swiperID, targetID)
		}
		thread.Status = models.ThreadMatched
		if thread.MatchedAt == nil {
			thread.MatchedAt = &now
		}
	} else if thread.Status != models.ThreadMatched {
		thread.Status = models.ThreadPending
	}
	thread.UpdatedAt = now

	if err := ms.Threads.Put(ctx, *thread); err != nil {
		return nil, fmt.Errorf("failed to store thread: %w", err)
	}
	return thread, nil
}

// ensureThread finds the thread for the unordered pair, creating a
// pending one initiated by swiperID when none exists yet.
func (ms *MatchService) ensureThread(ctx context.Context, swiperID, targetID string) (*models.MatchThread, error) {
	thread, err := ms.Threads.FindByMembers(ctx, swiperID, targetID)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up thread: %w", err)
	}

	now := ms.now()
	thread = &models.MatchThread{
		ID:           uuid.NewString(),
		PairKey:      models.PairKeyFor(swiperID, targetID),
		Members:      []string{swiperID, targetID},
		Status:       models.ThreadPending,
		InitiatedBy:  swiperID,
		Conversation: []models.Message{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ms.Threads.Put(ctx, *thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}
	return thread, nil
}

// ListThreads returns every thread the user is a member of, most
// recent activity first, decorated with member profiles.
func (ms *MatchService) ListThreads(ctx context.Context, userID string) ([]models.ThreadView, error) {
	threads, err := ms.Threads.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastActivity().After(threads[j].LastActivity())
	})

	views := make([]models.ThreadView, 0, len(threads))
	for i := range threads {
		view, err := ms.decorate(ctx, &threads[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// SwipeStats summarizes a user's trailing-24h activity.
type SwipeStats struct {
	SwipesToday  int `json:"swipesToday"`
	LikesToday   int `json:"likesToday"`
	MatchesToday int `json:"matchesToday"`
}

// Stats counts the caller's swipes, likes, and matches within the
// trailing 24 hours.
func (ms *MatchService) Stats(ctx context.Context, userID string) (*SwipeStats, error) {
	dayAgo := ms.now().Add(-24 * time.Hour)

	swipes, err := ms.Swipes.BySwiper(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipes: %w", err)
	}

	stats := &SwipeStats{}
	for _, ev := range swipes {
		if ev.CreatedAt.Before(dayAgo) {
			continue
		}
		stats.SwipesToday++
		if ev.Decision == models.DecisionLike {
			stats.LikesToday++
		}
	}

	threads, err := ms.Threads.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	for i := range threads {
		t := &threads[i]
		if t.Status != models.ThreadMatched {
			continue
		}
		matchedOn := t.CreatedAt
		if t.MatchedAt != nil {
			matchedOn = *t.MatchedAt
		} else if !t.UpdatedAt.IsZero() {
			matchedOn = t.UpdatedAt
		}
		if !matchedOn.Before(dayAgo) {
			stats.MatchesToday++
		}
	}

	return stats, nil
}

// GetThread fetches a thread by id, decorated.
func (ms *MatchService) GetThread(ctx context.Context, threadID string) (*models.MatchThread, error) {
	thread, err := ms.Threads.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, utils.NotFound("Match not found")
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

// decorate embeds public member profiles and the awaiting-member
// projection. Members whose profile is gone are dropped rather than
// failing the whole response.
func (ms *MatchService) decorate(ctx context.Context, thread *models.MatchThread) (*models.ThreadView, error) {
	members := make([]models.UserProfile, 0, len(thread.Members))
	for _, memberID := range thread.Members {
		profile, err := ms.Profiles.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to fetch member profile: %w", err)
		}
		members = append(members, profile.Public())
	}

	conversation := thread.Conversation
	if conversation == nil {
		conversation = []models.Message{}
	}

	return &models.ThreadView{
		ID:               thread.ID,
		Members:          members,
		Status:           thread.Status,
		InitiatedBy:      thread.InitiatedBy,
		AwaitingMemberID: thread.AwaitingMemberID(),
		MatchedAt:        thread.MatchedAt,
		Conversation:     conversation,
		CreatedAt:        thread.CreatedAt,
		UpdatedAt:        thread.UpdatedAt,
	}, nil
}
