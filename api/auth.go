package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tysencreager/MicroMentor/internal/insights"
	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	profileRepo   repository.MentorProfileRepo
	gen           insights.Generator
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, pr repository.MentorProfileRepo, gen insights.Generator, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, profileRepo: pr, gen: gen, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      string   `json:"role"`
	Interests []string `json:"interests"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token          string       `json:"token"`
	User           *models.User `json:"user"`
	WelcomeMessage string       `json:"welcomeMessage,omitempty"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, "Missing fields", http.StatusBadRequest)
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleMentee
	}
	if role != models.RoleMentee && role != models.RoleMentor && role != models.RoleBoth {
		writeError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("lookup user by email", "err", err)
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user, err := h.userRepo.UpsertUser(ctx, &models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		PasswordHash: string(hash),
	})
	if err != nil {
		logger.Error("create user", "err", err)
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	name := user.FirstName
	if name == "" {
		name = user.Email
	}
	welcome := h.gen.WelcomeMessage(ctx, name, req.Interests)

	writeJSON(w, authResponse{Token: token, User: user, WelcomeMessage: welcome}, http.StatusCreated)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByEmail(r.Context(), req.Email)
	if err != nil || user == nil {
		writeError(w, "Credentials not found", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: token, User: user}, http.StatusOK)
}

func (h *AuthHandler) issueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

// GetAuthUser returns the resolved caller's user record.
func (h *AuthHandler) GetAuthUser(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	user, err := h.userRepo.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error("fetch user", "err", err)
		writeError(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

// Logout clears the mock cookie; for stateless JWT the client just drops the
// token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: mockUserCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, map[string]string{"message": "signed out"}, http.StatusOK)
}

// MockLoginIndex describes the mock auth flow and the current mock user.
func (h *AuthHandler) MockLoginIndex(w http.ResponseWriter, r *http.Request) {
	role := "mentee"
	if c, err := r.Cookie(mockUserCookie); err == nil {
		if _, ok := mockUsers[c.Value]; ok {
			role = c.Value
		}
	}
	current := mockUsers[role]

	writeJSON(w, map[string]any{
		"message":        "Mock auth is enabled. Use /api/mock-login/{role} to switch users",
		"availableRoles": mockRoles(),
		"currentUser":    current,
	}, http.StatusOK)
}

// MockLogin switches the caller to one of the fixed mock users, seeding the
// user record and a default mentor profile where the role calls for one.
func (h *AuthHandler) MockLogin(w http.ResponseWriter, r *http.Request, role string) {
	mock, ok := mockUsers[role]
	if !ok {
		writeError(w, "Invalid role. Choose: mentee, mentor, or both", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.UpsertUser(ctx, &mock)
	if err != nil {
		logger.Error("upsert mock user", "err", err)
		writeError(w, "Error setting up mock user", http.StatusInternalServerError)
		return
	}

	if role == "mentor" || role == "both" {
		profile, err := h.profileRepo.GetMentorProfile(ctx, user.ID)
		if err != nil {
			logger.Error("fetch mock mentor profile", "err", err)
			writeError(w, "Error setting up mock user", http.StatusInternalServerError)
			return
		}
		if profile == nil {
			if _, err := h.profileRepo.CreateMentorProfile(ctx, &models.MentorProfile{
				UserID:         user.ID,
				Title:          "Senior Software Engineer",
				Company:        "Tech Company",
				Bio:            "Mock mentor for local development",
				Expertise:      []string{"career", "technical", "leadership"},
				WeeklyCapacity: 5,
				IsActive:       true,
			}); err != nil {
				logger.Error("seed mock mentor profile", "err", err)
				writeError(w, "Error setting up mock user", http.StatusInternalServerError)
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{Name: mockUserCookie, Value: role, Path: "/", HttpOnly: true})

	writeJSON(w, map[string]any{
		"message": "Logged in as " + role,
		"user":    user,
	}, http.StatusOK)
}
