package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dsaprep/internal/metrics"
	"dsaprep/internal/middleware"
	"dsaprep/internal/models"
	"dsaprep/internal/tracker"
	"dsaprep/internal/utils"
)

// TrackerHandler exposes the per-user session over HTTP.
type TrackerHandler struct {
	Sessions *tracker.Manager
}

func NewTrackerHandler(sessions *tracker.Manager) *TrackerHandler {
	return &TrackerHandler{Sessions: sessions}
}

func (handler *TrackerHandler) session(writer http.ResponseWriter, request *http.Request) *tracker.Session {
	uid := middleware.UserID(request.Context())
	session, err := handler.Sessions.Session(request.Context(), uid)
	if err != nil {
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_unavailable",
			Message: "Failed to load session",
		})
		return nil
	}
	return session
}

// GetStateHandler returns the session snapshot.
func (handler *TrackerHandler) GetStateHandler(writer http.ResponseWriter, request *http.Request) {
	session := handler.session(writer, request)
	if session == nil {
		return
	}
	utils.JSON(writer, http.StatusOK, session.Snapshot())
}

type selectTopicRequest struct {
	TopicID string `json:"topicId"`
}

func (handler *TrackerHandler) SelectTopicHandler(writer http.ResponseWriter, request *http.Request) {
	session := handler.session(writer, request)
	if session == nil {
		return
	}

	var req selectTopicRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || req.TopicID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	if err := session.SelectTopic(request.Context(), req.TopicID); err != nil {
		if errors.Is(err, tracker.ErrTopicNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "topic_not_found",
				Message: "Topic not found",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load topic",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, session.Snapshot())
}

type selectQuestionRequest struct {
	QuestionID string `json:"questionId"`
}

func (handler *TrackerHandler) SelectQuestionHandler(writer http.ResponseWriter, request *http.Request) {
	session := handler.session(writer, request)
	if session == nil {
		return
	}

	var req selectQuestionRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || req.QuestionID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	view, err := session.SelectQuestion(req.QuestionID)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrQuestionsLoading):
			utils.JSON(writer, http.StatusConflict, models.ErrorResponse{
				Code:    "questions_loading",
				Message: "Questions are still loading",
			})
		case errors.Is(err, tracker.ErrQuestionNotFound):
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "question_not_found",
				Message: "Question not found",
			})
		default:
			utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
				Code:    "internal_error",
				Message: "Failed to select question",
			})
		}
		return
	}

	utils.JSON(writer, http.StatusOK, view)
}

type recordEditRequest struct {
	TopicID    string                `json:"topicId"`
	QuestionID string                `json:"questionId"`
	Progress   models.ProgressUpdate `json:"progress"`
}

func (handler *TrackerHandler) RecordEditHandler(writer http.ResponseWriter, request *http.Request) {
	session := handler.session(writer, request)
	if session == nil {
		return
	}

	var req recordEditRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || req.TopicID == "" || req.QuestionID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	if err := session.RecordEdit(request.Context(), req.TopicID, req.QuestionID, req.Progress); err != nil {
		switch {
		case errors.Is(err, tracker.ErrStatusRequired):
			utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
				Code:    "status_required",
				Message: "status must be one of: Unsolved, Completed, Review Later",
			})
		case errors.Is(err, tracker.ErrTopicNotCurrent):
			utils.JSON(writer, http.StatusConflict, models.ErrorResponse{
				Code:    "topic_not_current",
				Message: "Topic is not the current selection",
			})
		case errors.Is(err, tracker.ErrQuestionNotFound):
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "question_not_found",
				Message: "Question not found",
			})
		default:
			utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
				Code:    "internal_error",
				Message: "Failed to save progress",
			})
		}
		return
	}

	metrics.ProgressEdits.Inc()
	utils.JSON(writer, http.StatusOK, session.Snapshot())
}

type clearStatusRequest struct {
	TopicID    string `json:"topicId"`
	QuestionID string `json:"questionId"`
}

func (handler *TrackerHandler) ClearStatusHandler(writer http.ResponseWriter, request *http.Request) {
	session := handler.session(writer, request)
	if session == nil {
		return
	}

	var req clearStatusRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || req.TopicID == "" || req.QuestionID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	if err := session.ClearStatus(request.Context(), req.TopicID, req.QuestionID); err != nil {
		switch {
		case errors.Is(err, tracker.ErrTopicNotCurrent):
			utils.JSON(writer, http.StatusConflict, models.ErrorResponse{
				Code:    "topic_not_current",
				Message: "Topic is not the current selection",
			})
		case errors.Is(err, tracker.ErrProgressNotFound):
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "progress_not_found",
				Message: "No progress record for question",
			})
		default:
			utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
				Code:    "internal_error",
				Message: "Failed to clear status",
			})
		}
		return
	}

	utils.JSON(writer, http.StatusOK, session.Snapshot())
}

type setGoalRequest struct {
	Goal models.Goal `json:"goal"`
}

func (handler *TrackerHandler) SetGoalHandler(writer http.ResponseWriter, request *http.Request) {
	session := handler.session(writer, request)
	if session == nil {
		return
	}

	var req setGoalRequest
	if err := json.NewDecoder(request.Body).Decode(&req); err != nil || !req.Goal.Valid() {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_goal",
			Message: "goal must be one of: learn, practice",
		})
		return
	}

	if err := session.SetGoal(request.Context(), req.Goal); err != nil {
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to switch goal",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, session.Snapshot())
}
