package mongo

import (
	"context"
	"errors"
	"time"

	"dsaprep/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrProgressNotFound = errors.New("progress record not found")

// ProgressRepo wraps the per-user progress collection. One document per
// (uid, goal, topicId, questionId), created lazily on first edit.
type ProgressRepo struct{ col *mongo.Collection }

func NewProgressRepo(db *mongo.Database) *ProgressRepo {
	col := db.Collection("progress")
	r := &ProgressRepo{col: col}

	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{
			{Key: "uid", Value: 1},
			{Key: "goal", Value: 1},
			{Key: "topicId", Value: 1},
			{Key: "questionId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})

	return r
}

// ByTopic returns the user's progress for a topic keyed by question id.
func (r *ProgressRepo) ByTopic(ctx context.Context, uid string, goal models.Goal, topicID string) (map[string]models.ProgressRecord, error) {
	cur, err := r.col.Find(ctx, bson.M{"uid": uid, "goal": goal, "topicId": topicID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.ProgressRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}

	out := make(map[string]models.ProgressRecord, len(records))
	for _, rec := range records {
		out[rec.QuestionID] = rec
	}
	return out, nil
}

// Save merge-writes status/codes/notes into the record, creating it if
// absent. Other fields on the document are preserved.
func (r *ProgressRepo) Save(ctx context.Context, uid string, goal models.Goal, topicID, questionID string, update models.ProgressUpdate) error {
	filter := bson.M{"uid": uid, "goal": goal, "topicId": topicID, "questionId": questionID}
	set := bson.M{"$set": bson.M{
		"status":    update.Status,
		"codes":     update.Codes,
		"notes":     update.Notes,
		"updatedAt": time.Now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	return err
}

// ClearStatus removes only the status field; codes and notes survive.
// The record must already exist.
func (r *ProgressRepo) ClearStatus(ctx context.Context, uid string, goal models.Goal, topicID, questionID string) error {
	filter := bson.M{"uid": uid, "goal": goal, "topicId": topicID, "questionId": questionID}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{
		"$unset": bson.M{"status": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProgressNotFound
	}
	return nil
}
