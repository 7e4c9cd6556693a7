// One-shot migration: reshape the legacy per-document topic collection
// into the denormalized topics array on each goal's catalog document.
// Safe to run repeatedly; each goal is migrated independently.
package main

import (
	"context"
	"os"
	"time"

	"dsaprep/internal/config"
	"dsaprep/internal/models"
	mongorepo "dsaprep/internal/repositories/mongo"

	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongorepo.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db, err := client.DB(cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to open mongo database", zap.Error(err))
	}

	legacy := mongorepo.NewLegacyTopicRepo(db)
	topics := mongorepo.NewTopicRepo(db)

	goals := []models.Goal{models.GoalLearn, models.GoalPractice}
	failed := false

	for _, goal := range goals {
		if err := migrateGoal(ctx, legacy, topics, goal); err != nil {
			// one goal failing must not abort the other
			logger.Error("migration failed for goal", zap.String("goal", string(goal)), zap.Error(err))
			failed = true
			continue
		}
		logger.Info("topics array saved for goal", zap.String("goal", string(goal)))
	}

	if failed {
		os.Exit(1)
	}
}

func migrateGoal(ctx context.Context, legacy *mongorepo.LegacyTopicRepo, topics *mongorepo.TopicRepo, goal models.Goal) error {
	docs, err := legacy.ByGoal(ctx, goal)
	if err != nil {
		return err
	}

	projected := make([]models.Topic, 0, len(docs))
	for _, doc := range docs {
		projected = append(projected, models.Topic{ID: doc.ID, Name: doc.Name, Order: doc.Order})
	}

	return topics.WriteCatalog(ctx, goal, projected)
}
