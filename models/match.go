package models

import "time"

// ThreadStatus tracks whether a pairing is still one-sided.
type ThreadStatus string

const (
	ThreadPending ThreadStatus = "pending"
	ThreadMatched ThreadStatus = "matched"
)

// MatchThread is the pairing record for two users plus their
// conversation. Exactly one thread exists per unordered pair; status
// only ever moves pending -> matched.
type MatchThread struct {
	ID           string       `dynamodbav:"id" json:"id"`
	PairKey      string       `dynamodbav:"pairKey" json:"-"`
	Members      []string     `dynamodbav:"members" json:"members"`
	Status       ThreadStatus `dynamodbav:"status" json:"status"`
	InitiatedBy  string       `dynamodbav:"initiatedBy" json:"initiatedBy"`
	MatchedAt    *time.Time   `dynamodbav:"matchedAt,omitempty" json:"matchedAt,omitempty"`
	Conversation []Message    `dynamodbav:"conversation,omitempty" json:"conversation"`
	CreatedAt    time.Time    `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `dynamodbav:"updatedAt" json:"updatedAt"`
}

// PairKeyFor builds the canonical key for an unordered member pair.
func PairKeyFor(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "#" + b
}

// HasMember reports whether userID is one of the two thread members.
func (t *MatchThread) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// AwaitingMemberID is a computed projection, never stored: while the
// thread is pending it names the member who has not reciprocated yet.
// Once matched it is meaningless and returns "".
func (t *MatchThread) AwaitingMemberID() string {
	if t.Status != ThreadPending {
		return ""
	}
	for _, m := range t.Members {
		if m != t.InitiatedBy {
			return m
		}
	}
	return ""
}

// LastActivity picks the most meaningful timestamp for sorting threads.
func (t *MatchThread) LastActivity() time.Time {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	if t.MatchedAt != nil {
		return *t.MatchedAt
	}
	return t.CreatedAt
}

// ThreadView is a MatchThread decorated for API responses: member
// profiles are embedded (public fields only) and the awaiting member
// is projected from initiatedBy.
type ThreadView struct {
	ID               string        `json:"id"`
	Members          []UserProfile `json:"members"`
	Status           ThreadStatus  `json:"status"`
	InitiatedBy      string        `json:"initiatedBy"`
	AwaitingMemberID string        `json:"awaitingMemberId,omitempty"`
	MatchedAt        *time.Time    `json:"matchedAt,omitempty"`
	Conversation     []Message     `json:"conversation"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// MatchThreadsTable is the DynamoDB table name for match threads
const MatchThreadsTable = "MatchThreads"
