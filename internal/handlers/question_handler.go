package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dsaprep/internal/models"
	mongorepo "dsaprep/internal/repositories/mongo"
	"dsaprep/internal/utils"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	repo QuestionStore
}

func NewQuestionHandler(r QuestionStore) *QuestionHandler {
	return &QuestionHandler{repo: r}
}

// GetQuestionsHandler lists a topic's questions, optionally filtered by
// category and difficulty.
func (handler *QuestionHandler) GetQuestionsHandler(writer http.ResponseWriter, request *http.Request) {
	goal, ok := goalParam(request)
	if !ok {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}
	topicID := chi.URLParam(request, "topicId")

	difficulty := request.URL.Query().Get("difficulty")
	if d := strings.ToLower(difficulty); d != "" {
		if d != strings.ToLower(string(models.Easy)) &&
			d != strings.ToLower(string(models.Medium)) &&
			d != strings.ToLower(string(models.Hard)) {
			utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_difficulty",
				Message: "difficulty must be one of: Easy, Medium, Hard",
			})
			return
		}
	}
	category := request.URL.Query().Get("category")

	questions, err := handler.repo.ByTopic(request.Context(), goal, topicID)
	if err != nil {
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch questions",
		})
		return
	}

	filtered := questions[:0]
	for _, q := range questions {
		if category != "" && !strings.EqualFold(q.Category, category) {
			continue
		}
		if difficulty != "" && !strings.EqualFold(string(q.Difficulty), difficulty) {
			continue
		}
		filtered = append(filtered, q)
	}

	utils.JSON(writer, http.StatusOK, models.QuestionsResponse{
		Total: len(filtered),
		Items: filtered,
	})
}

func (handler *QuestionHandler) CreateQuestionHandler(writer http.ResponseWriter, request *http.Request) {
	goal, ok := goalParam(request)
	if !ok {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}

	var question models.Question
	if err := json.NewDecoder(request.Body).Decode(&question); err != nil {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	question.Goal = goal
	question.TopicID = chi.URLParam(request, "topicId")

	created, err := handler.repo.Create(request.Context(), &question)
	if err != nil {
		if errors.Is(err, mongorepo.ErrDuplicateOrder) {
			utils.JSON(writer, http.StatusConflict, models.ErrorResponse{
				Code:    "duplicate_order",
				Message: "order already in use for this topic",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to create question",
		})
		return
	}

	writer.Header().Set("Location", "/api/v1/admin/questions/"+created.ID)
	utils.JSON(writer, http.StatusCreated, created)
}

func (handler *QuestionHandler) GetQuestionByIDHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	question, err := handler.repo.GetByID(request.Context(), id)
	if err != nil {
		utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
			Code:    "question_not_found",
			Message: "Question not found",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, question)
}

func (handler *QuestionHandler) UpdateQuestionHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	var patch map[string]interface{}
	if err := json.NewDecoder(request.Body).Decode(&patch); err != nil {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	// identity fields are assigned at creation time
	delete(patch, "_id")
	delete(patch, "id")
	delete(patch, "goal")
	delete(patch, "topicId")
	if order, ok := patch["order"].(float64); ok {
		patch["order"] = int(order)
	}

	updated, err := handler.repo.Update(request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, mongorepo.ErrQuestionNotFound):
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "question_not_found",
				Message: "Question not found",
			})
		case errors.Is(err, mongorepo.ErrDuplicateOrder):
			utils.JSON(writer, http.StatusConflict, models.ErrorResponse{
				Code:    "duplicate_order",
				Message: "order already in use for this topic",
			})
		default:
			utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
				Code:    "internal_error",
				Message: "Failed to update question",
			})
		}
		return
	}

	utils.JSON(writer, http.StatusOK, updated)
}

func (handler *QuestionHandler) DeleteQuestionHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	if err := handler.repo.Delete(request.Context(), id); err != nil {
		if errors.Is(err, mongorepo.ErrQuestionNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "question_not_found",
				Message: "Question not found",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to delete question",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, map[string]string{
		"message": "Question deleted successfully",
	})
}
