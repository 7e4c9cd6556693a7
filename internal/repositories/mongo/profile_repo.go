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

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepo wraps the per-user profile collection.
type ProfileRepo struct{ col *mongo.Collection }

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{col: db.Collection("profiles")}
}

// Ensure creates the profile document for uid if it does not exist and
// returns the stored profile. The upsert only sets fields on insert, so
// concurrent logins cannot clobber an existing profile.
func (r *ProfileRepo) Ensure(ctx context.Context, uid, email, displayName, phone string) (*models.Profile, error) {
	filter := bson.M{"_id": uid}
	update := bson.M{"$setOnInsert": bson.M{
		"email":       email,
		"displayName": displayName,
		"phoneNumber": phone,
		"goal":        models.GoalLearn,
		"lastTopic":   bson.M{},
		"createdAt":   time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Get fetches the profile for uid.
func (r *ProfileRepo) Get(ctx context.Context, uid string) (*models.Profile, error) {
	var profile models.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetGoal switches the user's active goal.
func (r *ProfileRepo) SetGoal(ctx context.Context, uid string, goal models.Goal) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"goal": goal}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SetLastTopic records the user's position pointer for a goal.
func (r *ProfileRepo) SetLastTopic(ctx context.Context, uid string, goal models.Goal, topicID string) error {
	field := "lastTopic." + string(goal)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{field: topicID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
