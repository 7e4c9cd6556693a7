package mongo

import (
	"context"

	"dsaprep/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store bundles the document repositories behind the surface the tracker
// consumes.
type Store struct {
	Profiles  *ProfileRepo
	Topics    *TopicRepo
	Questions *QuestionRepo
	Progress  *ProgressRepo
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Profiles:  NewProfileRepo(db),
		Topics:    NewTopicRepo(db),
		Questions: NewQuestionRepo(db),
		Progress:  NewProgressRepo(db),
	}
}

func (s *Store) Catalog(ctx context.Context, goal models.Goal) ([]models.Topic, error) {
	return s.Topics.Catalog(ctx, goal)
}

func (s *Store) QuestionsByTopic(ctx context.Context, goal models.Goal, topicID string) ([]models.Question, error) {
	return s.Questions.ByTopic(ctx, goal, topicID)
}

func (s *Store) ProgressByTopic(ctx context.Context, uid string, goal models.Goal, topicID string) (map[string]models.ProgressRecord, error) {
	return s.Progress.ByTopic(ctx, uid, goal, topicID)
}

func (s *Store) SaveProgress(ctx context.Context, uid string, goal models.Goal, topicID, questionID string, update models.ProgressUpdate) error {
	return s.Progress.Save(ctx, uid, goal, topicID, questionID, update)
}

func (s *Store) ClearStatus(ctx context.Context, uid string, goal models.Goal, topicID, questionID string) error {
	return s.Progress.ClearStatus(ctx, uid, goal, topicID, questionID)
}

func (s *Store) SetLastTopic(ctx context.Context, uid string, goal models.Goal, topicID string) error {
	return s.Profiles.SetLastTopic(ctx, uid, goal, topicID)
}

func (s *Store) SetGoal(ctx context.Context, uid string, goal models.Goal) error {
	return s.Profiles.SetGoal(ctx, uid, goal)
}

func (s *Store) Profile(ctx context.Context, uid string) (*models.Profile, error) {
	return s.Profiles.Get(ctx, uid)
}
