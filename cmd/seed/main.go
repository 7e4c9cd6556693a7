// Seeds the question bank from a YAML file. Intended for bootstrap and
// local development; enforces the same per-topic order rules as the
// admin surface.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"dsaprep/internal/config"
	"dsaprep/internal/models"
	mongorepo "dsaprep/internal/repositories/mongo"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Goals []seedGoal `yaml:"goals"`
}

type seedGoal struct {
	Goal   models.Goal `yaml:"goal"`
	Topics []seedTopic `yaml:"topics"`
}

type seedTopic struct {
	Name      string         `yaml:"name"`
	Order     int            `yaml:"order"`
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Difficulty  string `yaml:"difficulty"`
	Description string `yaml:"description"`
	Solution    string `yaml:"solution"`
	Link        string `yaml:"link"`
	Order       int    `yaml:"order"`
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	path := flag.String("file", "seed.yaml", "path to the seed file")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		logger.Fatal("failed to read seed file", zap.Error(err))
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		logger.Fatal("failed to parse seed file", zap.Error(err))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
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

	topics := mongorepo.NewTopicRepo(db)
	questions := mongorepo.NewQuestionRepo(db)

	for _, goal := range seed.Goals {
		if !goal.Goal.Valid() {
			logger.Error("skipping unknown goal", zap.String("goal", string(goal.Goal)))
			continue
		}
		for _, t := range goal.Topics {
			created, err := topics.Create(ctx, goal.Goal, t.Name, t.Order)
			if err != nil {
				logger.Error("failed to create topic",
					zap.String("goal", string(goal.Goal)), zap.String("topic", t.Name), zap.Error(err))
				continue
			}
			for _, q := range t.Questions {
				question := &models.Question{
					Goal:        goal.Goal,
					TopicID:     created.ID,
					Title:       q.Title,
					Category:    q.Category,
					Difficulty:  models.Difficulty(q.Difficulty),
					Description: q.Description,
					Solution:    q.Solution,
					Link:        q.Link,
					Order:       q.Order,
				}
				if _, err := questions.Create(ctx, question); err != nil {
					logger.Error("failed to create question",
						zap.String("topic", t.Name), zap.String("title", q.Title), zap.Error(err))
				}
			}
			logger.Info("seeded topic",
				zap.String("goal", string(goal.Goal)), zap.String("topic", t.Name),
				zap.Int("questions", len(t.Questions)))
		}
	}
}
