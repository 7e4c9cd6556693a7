package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dsaprep/internal/events"
	"dsaprep/internal/models"
	"dsaprep/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Repo      UserRepository
	Tokens    TokenRepository
	Profiles  ProfileStore
	Publish   func(events.Event)
	JWTSecret string
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	Profile      *models.Profile `json:"profile"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}

	if existing, _ := h.Repo.GetUserByUsername(req.Username); existing != nil {
		http.Error(w, "username taken", http.StatusConflict)
		return
	}
	if existing, _ := h.Repo.GetUserByEmail(req.Email); existing != nil {
		http.Error(w, "email taken", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}
	user := &models.User{Username: req.Username, Email: req.Email, Phone: req.Phone, PasswordHash: string(hash)}
	if err := h.Repo.CreateUser(user); err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"id": user.ID, "username": user.Username, "email": user.Email})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	user, err := h.Repo.GetUserByUsername(req.Username)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	signed, err := utils.GenerateToken(user.ID, user.Username, user.Admin, h.JWTSecret, accessTokenTTL)
	if err != nil {
		http.Error(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	// the profile document is created on first login and reused after;
	// repeated logins must never duplicate it
	uid := fmt.Sprintf("%d", user.ID)
	profile, err := h.Profiles.Ensure(r.Context(), uid, user.Email, user.Username, user.Phone)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	refresh := &models.Token{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		Purpose:   models.TokenPurposeRefresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := h.Tokens.Create(refresh); err != nil {
		http.Error(w, "failed to create refresh token", http.StatusInternalServerError)
		return
	}

	if h.Publish != nil {
		h.Publish(events.Event{Type: events.TypeSignedIn, UID: uid, Goal: string(profile.Goal)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{Token: signed, RefreshToken: refresh.Token, Profile: profile})
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.VerifyToken(r, h.JWTSecret)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	uid, err := utils.GetUserIDFromClaims(claims)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Repo.GetUserByID(uid)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	profile, err := h.Profiles.Get(r.Context(), uid)
	if err != nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"user": user, "profile": profile})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		_ = h.Tokens.DeleteByToken(req.RefreshToken)
	}
	w.WriteHeader(http.StatusNoContent)
}
