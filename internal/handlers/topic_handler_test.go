package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dsaprep/internal/models"
	mongorepo "dsaprep/internal/repositories/mongo"

	"github.com/go-chi/chi/v5"
)

type mockTopicStore struct {
	catalogFn func(models.Goal) ([]models.Topic, error)
	createFn  func(models.Goal, string, int) (*models.Topic, error)
	renameFn  func(models.Goal, string, string) error
	deleteFn  func(models.Goal, string) error
}

func (m *mockTopicStore) Catalog(_ context.Context, goal models.Goal) ([]models.Topic, error) {
	if m.catalogFn == nil {
		panic("unexpected call to Catalog")
	}
	return m.catalogFn(goal)
}

func (m *mockTopicStore) Create(_ context.Context, goal models.Goal, name string, order int) (*models.Topic, error) {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(goal, name, order)
}

func (m *mockTopicStore) Rename(_ context.Context, goal models.Goal, topicID, name string) error {
	if m.renameFn == nil {
		panic("unexpected call to Rename")
	}
	return m.renameFn(goal, topicID, name)
}

func (m *mockTopicStore) Delete(_ context.Context, goal models.Goal, topicID string) error {
	if m.deleteFn == nil {
		panic("unexpected call to Delete")
	}
	return m.deleteFn(goal, topicID)
}

func newTopicRouter(store TopicStore) http.Handler {
	h := NewTopicHandler(store)
	r := chi.NewRouter()
	r.Route("/goals/{goal}/topics", func(r chi.Router) {
		r.Get("/", h.GetTopicsHandler)
		r.Post("/", h.CreateTopicHandler)
		r.Put("/{id}", h.RenameTopicHandler)
		r.Delete("/{id}", h.DeleteTopicHandler)
	})
	return r
}

func TestTopicHandler_GetTopicsHandler(t *testing.T) {
	t.Run("invalid goal", func(t *testing.T) {
		router := newTopicRouter(&mockTopicStore{})
		req := httptest.NewRequest(http.MethodGet, "/goals/bogus/topics", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid_goal") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		store := &mockTopicStore{
			catalogFn: func(goal models.Goal) ([]models.Topic, error) {
				if goal != models.GoalLearn {
					t.Fatalf("unexpected goal %s", goal)
				}
				return []models.Topic{{ID: "t1", Name: "Arrays", Order: 1}}, nil
			},
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodGet, "/goals/learn/topics", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Arrays") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestTopicHandler_CreateTopicHandler(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		router := newTopicRouter(&mockTopicStore{})
		req := httptest.NewRequest(http.MethodPost, "/goals/learn/topics", strings.NewReader(`{"order":1}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate order", func(t *testing.T) {
		store := &mockTopicStore{
			createFn: func(models.Goal, string, int) (*models.Topic, error) {
				return nil, mongorepo.ErrDuplicateOrder
			},
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodPost, "/goals/learn/topics", strings.NewReader(`{"name":"Arrays","order":1}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "duplicate_order") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		store := &mockTopicStore{
			createFn: func(goal models.Goal, name string, order int) (*models.Topic, error) {
				return &models.Topic{ID: "t1", Name: name, Order: order}, nil
			},
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodPost, "/goals/learn/topics", strings.NewReader(`{"name":"Arrays","order":1}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTopicHandler_RenameTopicHandler(t *testing.T) {
	t.Run("topic not found", func(t *testing.T) {
		store := &mockTopicStore{
			renameFn: func(models.Goal, string, string) error { return mongorepo.ErrTopicNotFound },
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodPut, "/goals/learn/topics/t404", strings.NewReader(`{"name":"Lists"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		store := &mockTopicStore{
			renameFn: func(_ models.Goal, topicID, name string) error {
				if topicID != "t1" || name != "Lists" {
					t.Fatalf("unexpected args %s %s", topicID, name)
				}
				return nil
			},
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodPut, "/goals/learn/topics/t1", strings.NewReader(`{"name":"Lists"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestTopicHandler_DeleteTopicHandler(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		store := &mockTopicStore{
			deleteFn: func(models.Goal, string) error { return errors.New("db down") },
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodDelete, "/goals/learn/topics/t1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		store := &mockTopicStore{
			deleteFn: func(models.Goal, string) error { return nil },
		}
		router := newTopicRouter(store)
		req := httptest.NewRequest(http.MethodDelete, "/goals/learn/topics/t1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}
