package api

import (
	"encoding/json"
	"net/http"

	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
)

type MentorsHandler struct {
	profileRepo repository.MentorProfileRepo
}

func NewMentorsHandler(pr repository.MentorProfileRepo) *MentorsHandler {
	return &MentorsHandler{profileRepo: pr}
}

// ListMentors is open: mentees self-select from the active mentor list.
func (h *MentorsHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.profileRepo.ListActiveMentors(r.Context())
	if err != nil {
		logger.Error("list mentors", "err", err)
		writeError(w, "Failed to list mentors", http.StatusInternalServerError)
		return
	}

	writeJSON(w, mentors, http.StatusOK)
}

type mentorProfileRequest struct {
	Title          *string  `json:"title"`
	Company        *string  `json:"company"`
	Bio            *string  `json:"bio"`
	Expertise      []string `json:"expertise"`
	WeeklyCapacity *int     `json:"weeklyCapacity"`
	IsActive       *bool    `json:"isActive"`
}

func (h *MentorsHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req mentorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	userID := UserIDFromContext(ctx)

	existing, err := h.profileRepo.GetMentorProfile(ctx, userID)
	if err != nil {
		logger.Error("fetch mentor profile", "err", err)
		writeError(w, "Failed to fetch mentor profile", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Mentor profile already exists", http.StatusConflict)
		return
	}

	p := models.MentorProfile{UserID: userID, IsActive: true}
	applyProfileRequest(&p, &req)

	profile, err := h.profileRepo.CreateMentorProfile(ctx, &p)
	if err != nil {
		logger.Error("create mentor profile", "err", err)
		writeError(w, "Failed to store mentor profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile, http.StatusCreated)
}

func (h *MentorsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileRepo.GetMentorProfile(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		logger.Error("fetch mentor profile", "err", err)
		writeError(w, "Failed to fetch mentor profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

// UpdateProfile merges the provided fields into the caller's profile.
func (h *MentorsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req mentorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	profile, err := h.profileRepo.GetMentorProfile(ctx, UserIDFromContext(ctx))
	if err != nil {
		logger.Error("fetch mentor profile", "err", err)
		writeError(w, "Failed to fetch mentor profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	applyProfileRequest(profile, &req)
	if err := h.profileRepo.UpdateMentorProfile(ctx, profile); err != nil {
		logger.Error("update mentor profile", "err", err)
		writeError(w, "Failed to update mentor profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

func applyProfileRequest(p *models.MentorProfile, req *mentorProfileRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Company != nil {
		p.Company = *req.Company
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Expertise != nil {
		p.Expertise = req.Expertise
	}
	if req.WeeklyCapacity != nil {
		p.WeeklyCapacity = *req.WeeklyCapacity
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}
