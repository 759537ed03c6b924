package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const suggestionKeyPrefix = "kujuana:suggestions:" // kujuana:suggestions:{userId}:{limit}

// SuggestionCache is an optional Redis read-through cache in front of
// the suggestion pipeline. A nil cache is a no-op, so deployments
// without Redis just recompute every request. Entries are invalidated
// whenever the owner swipes, since a swipe changes their deck.
type SuggestionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SuggestionCache{Client: client, TTL: ttl}
}

func (c *SuggestionCache) key(userID string, limit int) string {
	return fmt.Sprintf("%s%s:%d", suggestionKeyPrefix, userID, limit)
}

// Get returns the cached deck and whether it was present. Cache errors
// are logged and treated as misses; the store is the source of truth.
func (c *SuggestionCache) Get(ctx context.Context, userID string, limit int) ([]Suggestion, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, c.key(userID, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("suggestion cache get failed for %s: %v", userID, err)
		}
		return nil, false
	}
	var suggestions []Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		log.Printf("suggestion cache entry for %s is corrupt, dropping: %v", userID, err)
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return suggestions, true
}

func (c *SuggestionCache) Set(ctx context.Context, userID string, limit int, suggestions []Suggestion) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		log.Printf("failed to marshal suggestions for cache: %v", err)
		return
	}
	if err := c.Client.Set(ctx, c.key(userID, limit), raw, c.TTL).Err(); err != nil {
		log.Printf("suggestion cache set failed for %s: %v", userID, err)
	}
}

// Invalidate drops every cached deck for userID regardless of limit.
func (c *SuggestionCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.Client == nil {
		return
	}
	iter := c.Client.Scan(ctx, 0, suggestionKeyPrefix+userID+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("suggestion cache invalidate failed for %s: %v", userID, err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("suggestion cache scan failed for %s: %v", userID, err)
	}
}
