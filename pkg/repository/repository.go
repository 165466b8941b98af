package repository

import (
	"context"

	"github.com/tysencreager/MicroMentor/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	// UpsertUser inserts the user or, when the id already exists, refreshes
	// its mutable fields. Returns the stored record.
	UpsertUser(ctx context.Context, u *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id, role string) error
}

type MentorProfileRepo interface {
	CreateMentorProfile(ctx context.Context, p *models.MentorProfile) (*models.MentorProfile, error)
	GetMentorProfile(ctx context.Context, userID string) (*models.MentorProfile, error)
	UpdateMentorProfile(ctx context.Context, p *models.MentorProfile) error
	// ListActiveMentors returns users with an active mentor profile, ordered
	// by profile creation time.
	ListActiveMentors(ctx context.Context) ([]models.MentorWithProfile, error)
}

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, q *models.Question) (*models.Question, error)
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	// ListQuestionsByMentee returns the mentee's questions newest first, each
	// with its answers and each answer's mentor plus mentor profile.
	ListQuestionsByMentee(ctx context.Context, menteeID string) ([]models.QuestionWithAnswers, error)
	ListPendingQuestions(ctx context.Context) ([]models.QuestionWithAnswers, error)
	UpdateQuestionStatus(ctx context.Context, id, status string) error
}

type AnswerRepo interface {
	// CreateAnswer persists the answer and flips the parent question to the
	// answered status in a single transaction.
	CreateAnswer(ctx context.Context, a *models.Answer) (*models.Answer, error)
	UpdateAnswerInsights(ctx context.Context, id string, insights *models.Insights) error
	SetAnswerHelpful(ctx context.Context, id string, helpful bool) error
	ListAnswersByMentor(ctx context.Context, mentorID string) ([]models.Answer, error)
}

// ApplicationStatusUpdate carries the admin review fields for a status change.
type ApplicationStatusUpdate struct {
	Status          string
	AdminNotes      string
	RejectionReason string
	ReviewedBy      string
	// ReviewedAt is stamped by the repository for terminal statuses.
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.MentorApplication) (*models.MentorApplication, error)
	GetApplication(ctx context.Context, id string) (*models.MentorApplication, error)
	GetApplicationByUser(ctx context.Context, userID string) (*models.MentorApplication, error)
	ListApplications(ctx context.Context) ([]models.MentorApplication, error)
	UpdateApplicationStatus(ctx context.Context, id string, upd ApplicationStatusUpdate) (*models.MentorApplication, error)
}
