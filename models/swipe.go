package models

import (
	"fmt"
	"time"
)

// Decision is the verdict a swiper records against a candidate.
type Decision string

const (
	DecisionLike      Decision = "like"
	DecisionPass      Decision = "pass"
	DecisionSuperLike Decision = "superlike"
)

// ParseDecision validates a raw decision string from a request body.
func ParseDecision(raw string) (Decision, error) {
	switch Decision(raw) {
	case DecisionLike, DecisionPass, DecisionSuperLike:
		return Decision(raw), nil
	default:
		return "", fmt.Errorf("unknown decision %q", raw)
	}
}

// SwipeEvent is an append-only ledger entry. Events are never updated
// or deleted; duplicates for the same (swiper, target) pair are kept.
type SwipeEvent struct {
	ID        string    `dynamodbav:"id" json:"id"`
	SwiperID  string    `dynamodbav:"swiperId" json:"swiperId"`
	TargetID  string    `dynamodbav:"targetId" json:"targetId"`
	Decision  Decision  `dynamodbav:"decision" json:"decision"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for the swipe ledger
const SwipesTable = "Swipes"
