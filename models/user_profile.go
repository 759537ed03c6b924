package models

import "time"

// UserProfile defines the structure for user profiles
type UserProfile struct {
	ID           string      `dynamodbav:"id" json:"id"`
	Email        string      `dynamodbav:"email" json:"email,omitempty"`
	PasswordHash string      `dynamodbav:"passwordHash" json:"-"`
	FirstName    string      `dynamodbav:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string      `dynamodbav:"lastName,omitempty" json:"lastName,omitempty"`
	Age          int         `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender       string      `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Location     Location    `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Occupation   string      `dynamodbav:"occupation,omitempty" json:"occupation,omitempty"`
	Bio          string      `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Interests    []string    `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	Goals        []string    `dynamodbav:"goals,omitempty" json:"goals,omitempty"`
	Preferences  Preferences `dynamodbav:"preferences,omitempty" json:"preferences,omitempty"`
	PhotoURLs    []string    `dynamodbav:"photoUrls,omitempty" json:"photoUrls,omitempty"`
	Badges       []string    `dynamodbav:"badges,omitempty" json:"badges,omitempty"`
	Plan         string      `dynamodbav:"plan,omitempty" json:"plan,omitempty"`
	Boosts       int         `dynamodbav:"boosts,omitempty" json:"boosts,omitempty"`
	CreatedAt    time.Time   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Location is the coarse place a user reports on their profile
type Location struct {
	City    string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Country string `dynamodbav:"country,omitempty" json:"country,omitempty"`
}

// Preferences captures who a user wants to be suggested
type Preferences struct {
	Gender           string `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	AgeRange         []int  `dynamodbav:"ageRange,omitempty" json:"ageRange,omitempty"`
	LocationRadiusKm int    `dynamodbav:"locationRadiusKm,omitempty" json:"locationRadiusKm,omitempty"`
}

// Sanitized returns a copy safe to show to the profile owner. The
// password hash is already excluded from JSON; this clears it so the
// value never leaves the service layer either.
func (p UserProfile) Sanitized() UserProfile {
	out := p
	out.PasswordHash = ""
	return out
}

// Public returns a copy safe to show to other users. Email joins the
// password hash on the strip list.
func (p UserProfile) Public() UserProfile {
	out := p.Sanitized()
	out.Email = ""
	return out
}

// AgeRangeOrDefault returns the preferred inclusive age bounds,
// falling back to the suggestion defaults when the preference is unset.
func (pr Preferences) AgeRangeOrDefault() (int, int) {
	if len(pr.AgeRange) == 2 {
		return pr.AgeRange[0], pr.AgeRange[1]
	}
	return 25, 60
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
