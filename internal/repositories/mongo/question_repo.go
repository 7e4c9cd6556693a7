package mongo

import (
	"context"
	"errors"

	"dsaprep/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepo wraps the questions collection.
type QuestionRepo struct{ col *mongo.Collection }

// NewQuestionRepo connects to the questions collection and ensures the
// (goal, topicId, order) index.
func NewQuestionRepo(db *mongo.Database) *QuestionRepo {
	col := db.Collection("questions")
	r := &QuestionRepo{col: col}

	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "goal", Value: 1}, {Key: "topicId", Value: 1}, {Key: "order", Value: 1}},
	})

	return r
}

// ByTopic returns a topic's questions in ascending order.
func (r *QuestionRepo) ByTopic(ctx context.Context, goal models.Goal, topicID string) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"goal": goal, "topicId": topicID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Question
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a single question.
func (r *QuestionRepo) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a new question. Order must be unique within the topic.
func (r *QuestionRepo) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	if q.Title == "" {
		return nil, errors.New("title required")
	}
	taken, err := r.orderTaken(ctx, q.Goal, q.TopicID, q.Order, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateOrder
	}

	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if _, err := r.col.InsertOne(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Update modifies an existing question by id.
func (r *QuestionRepo) Update(ctx context.Context, id string, patch map[string]interface{}) (*models.Question, error) {
	if order, ok := patch["order"].(int); ok {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		taken, err := r.orderTaken(ctx, existing.Goal, existing.TopicID, order, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateOrder
		}
	}

	var updated models.Question
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a question by id.
func (r *QuestionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (r *QuestionRepo) orderTaken(ctx context.Context, goal models.Goal, topicID string, order int, excludeID string) (bool, error) {
	filter := bson.M{"goal": goal, "topicId": topicID, "order": order}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
