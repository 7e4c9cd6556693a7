package models

import "time"

// Status is the saved state of a question for a user. The zero value means
// the question has never been marked.
type Status string

const (
	StatusUnsolved    Status = "Unsolved"
	StatusCompleted   Status = "Completed"
	StatusReviewLater Status = "Review Later"
)

func (s Status) Valid() bool {
	return s == StatusUnsolved || s == StatusCompleted || s == StatusReviewLater
}

// Terminal reports whether the status counts towards topic completion.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusReviewLater
}

// ProgressRecord is the per-user, per-question saved status/code/notes
// document. Created lazily on first edit; absence means "never touched".
type ProgressRecord struct {
	UID        string    `bson:"uid" json:"uid"`
	Goal       Goal      `bson:"goal" json:"goal"`
	TopicID    string    `bson:"topicId" json:"topicId"`
	QuestionID string    `bson:"questionId" json:"questionId"`
	Status     Status    `bson:"status,omitempty" json:"status,omitempty"`
	Codes      []string  `bson:"codes" json:"codes"`
	Notes      string    `bson:"notes" json:"notes"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProgressUpdate is the writable part of a progress record. The three
// fields overwrite their stored counterparts; anything else on the
// document is preserved by the merge write.
type ProgressUpdate struct {
	Status Status   `json:"status"`
	Codes  []string `json:"codes"`
	Notes  string   `json:"notes"`
}
