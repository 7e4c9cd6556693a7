package models

import "time"

// Goal selects which topic catalog applies.
type Goal string

const (
	GoalLearn    Goal = "learn"
	GoalPractice Goal = "practice"
)

func (g Goal) Valid() bool {
	return g == GoalLearn || g == GoalPractice
}

// Profile is the per-user document in the store. Created lazily on first
// login with goal defaulting to "learn"; never deleted by the application.
type Profile struct {
	UID         string          `bson:"_id" json:"uid"`
	Email       string          `bson:"email" json:"email"`
	DisplayName string          `bson:"displayName" json:"displayName"`
	PhoneNumber string          `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Goal        Goal            `bson:"goal" json:"goal"`
	LastTopic   map[Goal]string `bson:"lastTopic" json:"lastTopic"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
}
