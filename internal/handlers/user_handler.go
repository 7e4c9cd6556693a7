package handlers

import (
	"encoding/json"
	"net/http"

	"dsaprep/internal/models"
	"dsaprep/internal/repositories"
	"dsaprep/internal/utils"

	"github.com/go-chi/chi/v5"
)

// userUpdates maps the writable account fields; GORM skips zero values.
func userUpdates(req accountUpdateRequest) *models.User {
	return &models.User{Email: req.Email, Phone: req.Phone}
}

// SessionDropper lets account handlers discard tracker sessions.
type SessionDropper interface {
	Drop(uid string)
}

type UserHandler struct {
	Repo      UserRepository
	Sessions  SessionDropper
	JWTSecret string
}

type accountUpdateRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateUserHandler updates the caller's own account details.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.VerifyToken(r, h.JWTSecret)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	callerID, err := utils.GetUserIDFromClaims(claims)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}
	if userID != callerID {
		http.Error(w, "cannot modify another user", http.StatusForbidden)
		return
	}

	var req accountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updates := userUpdates(req)
	user, err := h.Repo.UpdateUser(userID, updates)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			http.Error(w, "User not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to update user", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// DeleteUserHandler deletes the caller's own account. The profile and
// progress documents are intentionally left in place.
func (h *UserHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.VerifyToken(r, h.JWTSecret)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	callerID, err := utils.GetUserIDFromClaims(claims)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}
	if userID != callerID {
		http.Error(w, "cannot delete another user", http.StatusForbidden)
		return
	}

	if err := h.Repo.DeleteUser(userID); err != nil {
		if err == repositories.ErrUserNotFound {
			http.Error(w, "User not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		}
		return
	}

	if h.Sessions != nil {
		h.Sessions.Drop(userID)
	}
	w.WriteHeader(http.StatusNoContent)
}
