package handlers

import (
	"context"
	"time"

	"dsaprep/internal/models"
)

// UserRepository captures the persistence operations required by handlers.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	UpdateUser(userID string, updates *models.User) (*models.User, error)
	DeleteUser(userID string) error
}

// TokenRepository captures the token persistence operations required by handlers.
type TokenRepository interface {
	Create(token *models.Token) error
	GetByToken(tokenStr string) (*models.Token, error)
	DeleteByToken(tokenStr string) error
	DeleteByUserAndPurpose(userID uint, purpose models.TokenPurpose) error
	DeleteExpired(before time.Time) (int64, error)
}

// ProfileStore captures the profile document operations required by handlers.
type ProfileStore interface {
	Ensure(ctx context.Context, uid, email, displayName, phone string) (*models.Profile, error)
	Get(ctx context.Context, uid string) (*models.Profile, error)
}

// TopicStore captures the catalog operations required by the admin surface.
type TopicStore interface {
	Catalog(ctx context.Context, goal models.Goal) ([]models.Topic, error)
	Create(ctx context.Context, goal models.Goal, name string, order int) (*models.Topic, error)
	Rename(ctx context.Context, goal models.Goal, topicID, name string) error
	Delete(ctx context.Context, goal models.Goal, topicID string) error
}

// QuestionStore captures the question-bank operations required by the admin surface.
type QuestionStore interface {
	ByTopic(ctx context.Context, goal models.Goal, topicID string) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, q *models.Question) (*models.Question, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (*models.Question, error)
	Delete(ctx context.Context, id string) error
}
