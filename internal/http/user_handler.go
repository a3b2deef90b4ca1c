package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookreviews/internal/auth"
	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

type UserHandler struct {
	repo   usecase.UserRepository
	secret string
}

func NewUserHandler(repo usecase.UserRepository, secret string) *UserHandler {
	return &UserHandler{repo: repo, secret: secret}
}

type registerReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account. Usernames are unique, case-sensitively.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required", details)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	newUser := &entity.User{
		Username: req.Username,
		Password: hashedPassword,
	}
	if err := h.repo.Create(r.Context(), newUser); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			JSONError(w, http.StatusBadRequest, "ALREADY_EXISTS", "Username already exists", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message":  "User registered successfully",
		"username": newUser.Username,
	})
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and issues a token. Unknown user and wrong
// password produce the same answer so usernames cannot be enumerated.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required", details)
		return
	}

	user, err := h.repo.GetByUsername(r.Context(), req.Username)
	if err != nil || !auth.VerifyPassword(user.Password, req.Password) {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, user.Username)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message":  "Login successful",
		"token":    token,
		"username": user.Username,
	})
}
