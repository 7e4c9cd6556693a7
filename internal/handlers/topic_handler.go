package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dsaprep/internal/models"
	mongorepo "dsaprep/internal/repositories/mongo"
	"dsaprep/internal/utils"

	"github.com/go-chi/chi/v5"
)

type TopicHandler struct {
	repo TopicStore
}

func NewTopicHandler(r TopicStore) *TopicHandler {
	return &TopicHandler{repo: r}
}

func goalParam(r *http.Request) (models.Goal, bool) {
	goal := models.Goal(chi.URLParam(r, "goal"))
	return goal, goal.Valid()
}

func (handler *TopicHandler) GetTopicsHandler(writer http.ResponseWriter, request *http.Request) {
	goal, ok := goalParam(request)
	if !ok {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}

	topics, err := handler.repo.Catalog(request.Context(), goal)
	if err != nil {
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch topics",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, models.TopicsResponse{Goal: goal, Topics: topics})
}

type topicCreateRequest struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

func (handler *TopicHandler) CreateTopicHandler(writer http.ResponseWriter, request *http.Request) {
	goal, ok := goalParam(request)
	if !ok {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}

	var req topicCreateRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || req.Name == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	created, err := handler.repo.Create(request.Context(), goal, req.Name, req.Order)
	if err != nil {
		if errors.Is(err, mongorepo.ErrDuplicateOrder) {
			utils.JSON(writer, http.StatusConflict, models.ErrorResponse{
				Code:    "duplicate_order",
				Message: "order already in use for this goal",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to create topic",
		})
		return
	}

	utils.JSON(writer, http.StatusCreated, created)
}

type topicRenameRequest struct {
	Name string `json:"name"`
}

func (handler *TopicHandler) RenameTopicHandler(writer http.ResponseWriter, request *http.Request) {
	goal, ok := goalParam(request)
	if !ok {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}
	topicID := chi.URLParam(request, "id")

	var req topicRenameRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || req.Name == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	if err := handler.repo.Rename(request.Context(), goal, topicID, req.Name); err != nil {
		if errors.Is(err, mongorepo.ErrTopicNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "topic_not_found",
				Message: "Topic not found",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to rename topic",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, map[string]string{"message": "Topic renamed successfully"})
}

func (handler *TopicHandler) DeleteTopicHandler(writer http.ResponseWriter, request *http.Request) {
	goal, ok := goalParam(request)
	if !ok {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}
	topicID := chi.URLParam(request, "id")

	if err := handler.repo.Delete(request.Context(), goal, topicID); err != nil {
		if errors.Is(err, mongorepo.ErrTopicNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "topic_not_found",
				Message: "Topic not found",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to delete topic",
		})
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
