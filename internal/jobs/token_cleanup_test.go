package jobs

import (
	"errors"
	"testing"
	"time"

	"dsaprep/internal/models"
	"dsaprep/internal/repositories"
	"dsaprep/internal/testhelpers"

	"go.uber.org/zap"
)

type mockDeleter struct {
	deleteExpiredFn func(time.Time) (int64, error)
}

func (m *mockDeleter) DeleteExpired(before time.Time) (int64, error) {
	return m.deleteExpiredFn(before)
}

func TestTokenCleanupJob_Run(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := &repositories.TokenRepository{DB: db}

	expired := &models.Token{UserID: 1, Token: "expired", Purpose: models.TokenPurposeRefresh, ExpiresAt: time.Now().Add(-time.Hour)}
	live := &models.Token{UserID: 1, Token: "live", Purpose: models.TokenPurposeRefresh, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(expired); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(live); err != nil {
		t.Fatal(err)
	}

	job := NewTokenCleanupJob(repo, "0 2 * * *", zap.NewNop())
	if err := job.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := repo.GetByToken("expired"); err == nil {
		t.Fatal("expired token must be purged")
	}
	if _, err := repo.GetByToken("live"); err != nil {
		t.Fatalf("live token must survive: %v", err)
	}
}

func TestTokenCleanupJob_RunPropagatesError(t *testing.T) {
	deleter := &mockDeleter{
		deleteExpiredFn: func(time.Time) (int64, error) { return 0, errors.New("db down") },
	}
	job := NewTokenCleanupJob(deleter, "0 2 * * *", zap.NewNop())

	if err := job.Run(); err == nil {
		t.Fatal("expected error")
	}
}

func TestTokenCleanupJob_StartRejectsBadSchedule(t *testing.T) {
	deleter := &mockDeleter{deleteExpiredFn: func(time.Time) (int64, error) { return 0, nil }}
	job := NewTokenCleanupJob(deleter, "not a cron spec", zap.NewNop())
	defer job.Stop()

	if err := job.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestTokenCleanupJob_StartWithValidSchedule(t *testing.T) {
	deleter := &mockDeleter{deleteExpiredFn: func(time.Time) (int64, error) { return 0, nil }}
	job := NewTokenCleanupJob(deleter, "@every 1h", zap.NewNop())

	if err := job.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	job.Stop()
}
