package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"dsaprep/internal/middleware"
	"dsaprep/internal/models"
	"dsaprep/internal/tracker"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// trackerStore is an in-memory tracker.Store seeded with two topics for
// the learn goal.
type trackerStore struct {
	mu       sync.Mutex
	progress map[string]models.ProgressRecord
	last     map[models.Goal]string
}

func newTrackerStore() *trackerStore {
	return &trackerStore{
		progress: map[string]models.ProgressRecord{},
		last:     map[models.Goal]string{},
	}
}

func (s *trackerStore) Catalog(_ context.Context, goal models.Goal) ([]models.Topic, error) {
	if goal != models.GoalLearn {
		return nil, nil
	}
	return []models.Topic{
		{ID: "t1", Name: "Arrays", Order: 1},
		{ID: "t2", Name: "Strings", Order: 2},
	}, nil
}

func (s *trackerStore) QuestionsByTopic(_ context.Context, _ models.Goal, topicID string) ([]models.Question, error) {
	switch topicID {
	case "t1":
		return []models.Question{
			{ID: "q1", TopicID: "t1", Title: "Two Sum", Order: 1},
			{ID: "q2", TopicID: "t1", Title: "Rotate Array", Order: 2},
		}, nil
	case "t2":
		return []models.Question{{ID: "q3", TopicID: "t2", Title: "Reverse String", Order: 1}}, nil
	}
	return nil, nil
}

func (s *trackerStore) ProgressByTopic(_ context.Context, _ string, _ models.Goal, topicID string) (map[string]models.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]models.ProgressRecord{}
	for _, rec := range s.progress {
		if rec.TopicID == topicID {
			out[rec.QuestionID] = rec
		}
	}
	return out, nil
}

func (s *trackerStore) SaveProgress(_ context.Context, uid string, goal models.Goal, topicID, questionID string, update models.ProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[topicID+"/"+questionID] = models.ProgressRecord{
		UID: uid, Goal: goal, TopicID: topicID, QuestionID: questionID,
		Status: update.Status, Codes: update.Codes, Notes: update.Notes,
	}
	return nil
}

func (s *trackerStore) ClearStatus(_ context.Context, _ string, _ models.Goal, topicID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.progress[topicID+"/"+questionID]
	rec.Status = ""
	s.progress[topicID+"/"+questionID] = rec
	return nil
}

func (s *trackerStore) SetLastTopic(_ context.Context, _ string, goal models.Goal, topicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[goal] = topicID
	return nil
}

func (s *trackerStore) SetGoal(context.Context, string, models.Goal) error { return nil }

type trackerProfiles struct{}

func (trackerProfiles) Profile(_ context.Context, uid string) (*models.Profile, error) {
	return &models.Profile{UID: uid, Goal: models.GoalLearn, LastTopic: map[models.Goal]string{}}, nil
}

func newTrackerRouter(t *testing.T, store *trackerStore) http.Handler {
	t.Helper()
	manager := tracker.NewManager(store, trackerProfiles{}, zap.NewNop(), nil)
	h := NewTrackerHandler(manager)

	r := chi.NewRouter()
	r.Route("/tracker", func(r chi.Router) {
		r.Use(middleware.RequireAuth("test-secret"))
		r.Get("/state", h.GetStateHandler)
		r.Post("/topic", h.SelectTopicHandler)
		r.Post("/question", h.SelectQuestionHandler)
		r.Post("/progress", h.RecordEditHandler)
		r.Delete("/progress/status", h.ClearStatusHandler)
		r.Post("/goal", h.SetGoalHandler)
	})
	return r
}

func trackerRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+userToken(t, "test-secret", 1))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTrackerHandler_RequiresAuth(t *testing.T) {
	router := newTrackerRouter(t, newTrackerStore())
	req := httptest.NewRequest(http.MethodGet, "/tracker/state", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTrackerHandler_GetStateHandler(t *testing.T) {
	router := newTrackerRouter(t, newTrackerStore())

	rec := trackerRequest(t, router, http.MethodGet, "/tracker/state", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"phase":"ready"`) {
		t.Fatalf("expected ready phase: %s", body)
	}
	if !strings.Contains(body, `"selectedTopicId":"t1"`) {
		t.Fatalf("expected t1 selected: %s", body)
	}
}

func TestTrackerHandler_SelectTopicHandler(t *testing.T) {
	router := newTrackerRouter(t, newTrackerStore())

	t.Run("unknown topic", func(t *testing.T) {
		rec := trackerRequest(t, router, http.MethodPost, "/tracker/topic", `{"topicId":"nope"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := trackerRequest(t, router, http.MethodPost, "/tracker/topic", `{"topicId":"t2"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"selectedTopicId":"t2"`) {
			t.Fatalf("expected t2 selected: %s", rec.Body.String())
		}
	})
}

func TestTrackerHandler_RecordEditHandler(t *testing.T) {
	t.Run("missing status", func(t *testing.T) {
		router := newTrackerRouter(t, newTrackerStore())
		body := `{"topicId":"t1","questionId":"q1","progress":{"notes":"n"}}`
		rec := trackerRequest(t, router, http.MethodPost, "/tracker/progress", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "status_required") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("stale topic", func(t *testing.T) {
		router := newTrackerRouter(t, newTrackerStore())
		body := `{"topicId":"t2","questionId":"q3","progress":{"status":"Completed"}}`
		rec := trackerRequest(t, router, http.MethodPost, "/tracker/progress", body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("completing the topic advances and persists", func(t *testing.T) {
		store := newTrackerStore()
		router := newTrackerRouter(t, store)

		body := `{"topicId":"t1","questionId":"q1","progress":{"status":"Completed"}}`
		if rec := trackerRequest(t, router, http.MethodPost, "/tracker/progress", body); rec.Code != http.StatusOK {
			t.Fatalf("first edit: %d %s", rec.Code, rec.Body.String())
		}
		body = `{"topicId":"t1","questionId":"q2","progress":{"status":"Completed"}}`
		rec := trackerRequest(t, router, http.MethodPost, "/tracker/progress", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("second edit: %d %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"selectedTopicId":"t2"`) {
			t.Fatalf("expected advance to t2: %s", rec.Body.String())
		}
		if store.last[models.GoalLearn] != "t2" {
			t.Fatalf("expected persisted lastTopic t2, got %s", store.last[models.GoalLearn])
		}
	})
}

func TestTrackerHandler_ClearStatusHandler(t *testing.T) {
	router := newTrackerRouter(t, newTrackerStore())

	t.Run("no record", func(t *testing.T) {
		body := `{"topicId":"t1","questionId":"q1"}`
		rec := trackerRequest(t, router, http.MethodDelete, "/tracker/progress/status", body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		edit := `{"topicId":"t1","questionId":"q1","progress":{"status":"Completed"}}`
		if rec := trackerRequest(t, router, http.MethodPost, "/tracker/progress", edit); rec.Code != http.StatusOK {
			t.Fatalf("edit: %d %s", rec.Code, rec.Body.String())
		}
		body := `{"topicId":"t1","questionId":"q1"}`
		rec := trackerRequest(t, router, http.MethodDelete, "/tracker/progress/status", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"nextQuestion":{"id":"q1"`) {
			t.Fatalf("cleared question must be next again: %s", rec.Body.String())
		}
	})
}

func TestTrackerHandler_SetGoalHandler(t *testing.T) {
	router := newTrackerRouter(t, newTrackerStore())

	rec := trackerRequest(t, router, http.MethodPost, "/tracker/goal", `{"goal":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_goal") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
