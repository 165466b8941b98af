// Package mock provides hand-rolled repository fakes for handler tests.
package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/tysencreager/MicroMentor/pkg/models"
)

type Mocks struct {
	Users    *UserRepo
	Profiles *ProfileRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:    &UserRepo{},
		Profiles: &ProfileRepo{},
	}
}

// UserRepo holds at most one user, which is all the auth handler tests need.
type UserRepo struct {
	Stored    *models.User
	UpsertErr error
}

func (m *UserRepo) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	if m.UpsertErr != nil {
		return nil, m.UpsertErr
	}
	stored := *u
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.Stored = &stored
	return m.Stored, nil
}

func (m *UserRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) UpdateUserRole(ctx context.Context, id, role string) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored.Role = role
	}
	return nil
}

// ProfileRepo holds at most one mentor profile.
type ProfileRepo struct {
	Stored *models.MentorProfile
}

func (m *ProfileRepo) CreateMentorProfile(ctx context.Context, p *models.MentorProfile) (*models.MentorProfile, error) {
	stored := *p
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.Stored = &stored
	return m.Stored, nil
}

func (m *ProfileRepo) GetMentorProfile(ctx context.Context, userID string) (*models.MentorProfile, error) {
	if m.Stored != nil && m.Stored.UserID == userID {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *ProfileRepo) UpdateMentorProfile(ctx context.Context, p *models.MentorProfile) error {
	stored := *p
	m.Stored = &stored
	return nil
}

func (m *ProfileRepo) ListActiveMentors(ctx context.Context) ([]models.MentorWithProfile, error) {
	return []models.MentorWithProfile{}, nil
}
