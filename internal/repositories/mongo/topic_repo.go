package mongo

import (
	"context"
	"errors"
	"sort"

	"dsaprep/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTopicNotFound  = errors.New("topic not found")
	ErrDuplicateOrder = errors.New("order already in use")
)

// TopicRepo wraps the per-goal catalog documents. Each goal has a single
// document holding its topics as a denormalized array.
type TopicRepo struct{ col *mongo.Collection }

func NewTopicRepo(db *mongo.Database) *TopicRepo {
	return &TopicRepo{col: db.Collection("topics")}
}

// Catalog returns the topics for a goal sorted by ascending order.
// A missing catalog document is an empty catalog, not an error.
func (r *TopicRepo) Catalog(ctx context.Context, goal models.Goal) ([]models.Topic, error) {
	var catalog models.TopicCatalog
	err := r.col.FindOne(ctx, bson.M{"_id": goal}).Decode(&catalog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.Topic{}, nil
	}
	if err != nil {
		return nil, err
	}
	topics := catalog.Topics
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Order < topics[j].Order })
	return topics, nil
}

// Create appends a topic to the goal's catalog. Order must be unique
// within the goal.
func (r *TopicRepo) Create(ctx context.Context, goal models.Goal, name string, order int) (*models.Topic, error) {
	topics, err := r.Catalog(ctx, goal)
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		if t.Order == order {
			return nil, ErrDuplicateOrder
		}
	}

	topic := models.Topic{ID: uuid.New().String(), Name: name, Order: order}
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": goal},
		bson.M{"$push": bson.M{"topics": topic}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Rename changes a topic's display name.
func (r *TopicRepo) Rename(ctx context.Context, goal models.Goal, topicID, name string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": goal, "topics.id": topicID},
		bson.M{"$set": bson.M{"topics.$.name": name}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTopicNotFound
	}
	return nil
}

// Delete removes a topic from the goal's catalog. Its questions and any
// progress records are left behind for the stale-reference fallback to
// skip over.
func (r *TopicRepo) Delete(ctx context.Context, goal models.Goal, topicID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": goal},
		bson.M{"$pull": bson.M{"topics": bson.M{"id": topicID}}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrTopicNotFound
	}
	return nil
}

// LegacyTopicRepo reads the pre-migration per-topic documents. Used only
// by the migration job.
type LegacyTopicRepo struct{ col *mongo.Collection }

func NewLegacyTopicRepo(db *mongo.Database) *LegacyTopicRepo {
	return &LegacyTopicRepo{col: db.Collection("legacy_topics")}
}

// ByGoal returns the legacy topic documents for a goal sorted by order.
func (r *LegacyTopicRepo) ByGoal(ctx context.Context, goal models.Goal) ([]models.LegacyTopic, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"goal": goal}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LegacyTopic
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteCatalog merge-writes the denormalized topics array onto the goal's
// catalog document. Safe to run repeatedly.
func (r *TopicRepo) WriteCatalog(ctx context.Context, goal models.Goal, topics []models.Topic) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": goal},
		bson.M{"$set": bson.M{"topics": topics}},
		options.Update().SetUpsert(true),
	)
	return err
}
