package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
)

type ApplicationsHandler struct {
	appRepo     repository.ApplicationRepo
	userRepo    repository.UserRepo
	profileRepo repository.MentorProfileRepo
}

func NewApplicationsHandler(ar repository.ApplicationRepo, ur repository.UserRepo, pr repository.MentorProfileRepo) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, userRepo: ur, profileRepo: pr}
}

// Apply accepts a structured mentor application. Submissions are validated
// field by field and a caller may hold at most one application.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var app models.MentorApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if msg := validateApplication(&app); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	userID := UserIDFromContext(ctx)

	existing, err := h.appRepo.GetApplicationByUser(ctx, userID)
	if err != nil {
		logger.Error("fetch application", "err", err)
		writeError(w, "Failed to fetch application", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "You already have an application on file", http.StatusConflict)
		return
	}

	app.UserID = userID
	app.Status = models.ApplicationPending
	created, err := h.appRepo.CreateApplication(ctx, &app)
	if err != nil {
		logger.Error("create application", "err", err)
		writeError(w, "Failed to store application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

// GetOwnApplication returns the caller's application, or JSON null when none
// exists. Absence is not an error.
func (h *ApplicationsHandler) GetOwnApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.appRepo.GetApplicationByUser(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		logger.Error("fetch application", "err", err)
		writeError(w, "Failed to fetch application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, app, http.StatusOK)
}

// ListApplications returns every application, newest first.
func (h *ApplicationsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appRepo.ListApplications(r.Context())
	if err != nil {
		logger.Error("list applications", "err", err)
		writeError(w, "Failed to list applications", http.StatusInternalServerError)
		return
	}

	writeJSON(w, apps, http.StatusOK)
}

type statusUpdateRequest struct {
	Status          string `json:"status"`
	AdminNotes      string `json:"adminNotes"`
	RejectionReason string `json:"rejectionReason"`
}

// UpdateStatus moves an application through the review workflow:
// pending -> under_review -> approved|rejected, terminal states frozen.
// Approval promotes the applicant to mentor and seeds a profile from the
// application.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !models.ValidApplicationStatus(req.Status) {
		writeError(w, "Invalid status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	app, err := h.appRepo.GetApplication(ctx, id)
	if err != nil {
		logger.Error("fetch application", "err", err)
		writeError(w, "Failed to fetch application", http.StatusInternalServerError)
		return
	}
	if app == nil {
		writeError(w, "Application not found", http.StatusNotFound)
		return
	}
	if !models.ValidApplicationTransition(app.Status, req.Status) {
		writeError(w, fmt.Sprintf("Cannot move application from %s to %s", app.Status, req.Status), http.StatusConflict)
		return
	}

	updated, err := h.appRepo.UpdateApplicationStatus(ctx, id, repository.ApplicationStatusUpdate{
		Status:          req.Status,
		AdminNotes:      req.AdminNotes,
		RejectionReason: req.RejectionReason,
		ReviewedBy:      UserIDFromContext(ctx),
	})
	if err != nil {
		logger.Error("update application status", "err", err)
		writeError(w, "Failed to update application", http.StatusInternalServerError)
		return
	}

	if req.Status == models.ApplicationApproved {
		if err := h.promoteApplicant(ctx, updated); err != nil {
			// the approval itself stands; promotion can be redone manually
			logger.Error("promote approved applicant", "err", err, "user_id", updated.UserID)
		}
	}

	writeJSON(w, updated, http.StatusOK)
}

// promoteApplicant grants the mentor role and seeds a mentor profile from the
// approved application.
func (h *ApplicationsHandler) promoteApplicant(ctx context.Context, app *models.MentorApplication) error {
	user, err := h.userRepo.GetUser(ctx, app.UserID)
	if err != nil {
		return err
	}
	if user != nil && user.Role == models.RoleMentee {
		if err := h.userRepo.UpdateUserRole(ctx, user.ID, models.RoleBoth); err != nil {
			return err
		}
	}

	profile, err := h.profileRepo.GetMentorProfile(ctx, app.UserID)
	if err != nil {
		return err
	}
	if profile != nil {
		return nil
	}

	_, err = h.profileRepo.CreateMentorProfile(ctx, &models.MentorProfile{
		UserID:         app.UserID,
		Title:          app.CurrentTitle,
		Company:        app.CurrentCompany,
		Bio:            app.Bio,
		Expertise:      app.Expertise,
		WeeklyCapacity: app.AvailabilityHours,
		IsActive:       true,
	})
	return err
}

// validateApplication returns an empty string when the payload is acceptable
// and the first validation failure message otherwise.
func validateApplication(app *models.MentorApplication) string {
	if utf8.RuneCountInString(strings.TrimSpace(app.CurrentTitle)) < 2 {
		return "Current title is required"
	}
	if utf8.RuneCountInString(strings.TrimSpace(app.CurrentCompany)) < 2 {
		return "Current company is required"
	}
	if _, err := mail.ParseAddress(app.WorkEmail); err != nil {
		return "Valid work email is required"
	}
	if app.YearsExperience < 1 {
		return "Minimum 1 year of experience required"
	}
	if len(app.Expertise) == 0 {
		return "At least one area of expertise is required"
	}
	if utf8.RuneCountInString(strings.TrimSpace(app.Bio)) < 50 {
		return "Bio must be at least 50 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(app.MentoringMotivation)) < 30 {
		return "Please explain your motivation"
	}
	if app.AvailabilityHours < 1 || app.AvailabilityHours > 20 {
		return "Availability must be between 1-20 hours per week"
	}
	if len(app.PreferredCategories) == 0 {
		return "At least one preferred category is required"
	}
	if len(app.References) < 2 {
		return "At least 2 references are required"
	}
	for _, ref := range app.References {
		if strings.TrimSpace(ref.Name) == "" || strings.TrimSpace(ref.Email) == "" {
			return "Each reference needs a name and an email"
		}
	}
	return ""
}
