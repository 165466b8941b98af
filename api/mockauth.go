package api

import (
	"context"
	"net/http"

	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
)

// mockUserCookie carries the selected mock role between requests; a plain
// cookie stands in for a session store in local development.
const mockUserCookie = "mock_user"

// mockUsers are the fixed local-development identities, one per role.
var mockUsers = map[string]models.User{
	"mentee": {
		ID:        "mock-mentee-1",
		Email:     "mentee@example.com",
		FirstName: "Test",
		LastName:  "Mentee",
		Role:      models.RoleMentee,
	},
	"mentor": {
		ID:        "mock-mentor-1",
		Email:     "mentor@example.com",
		FirstName: "Test",
		LastName:  "Mentor",
		Role:      models.RoleMentor,
	},
	"both": {
		ID:        "mock-both-1",
		Email:     "both@example.com",
		FirstName: "Test",
		LastName:  "Both",
		Role:      models.RoleBoth,
	},
}

// MockAuthenticator resolves the mock user selected by the role cookie,
// defaulting to the mentee for easier testing. The resolved user is upserted
// lazily so foreign keys hold even before an explicit mock login.
type MockAuthenticator struct {
	Users repository.UserRepo
}

func (a *MockAuthenticator) ResolveIdentity(r *http.Request) (string, error) {
	role := "mentee"
	if c, err := r.Cookie(mockUserCookie); err == nil {
		if _, ok := mockUsers[c.Value]; ok {
			role = c.Value
		}
	}

	u := mockUsers[role]
	if err := a.ensureUser(r.Context(), u); err != nil {
		return "", err
	}

	return u.ID, nil
}

func (a *MockAuthenticator) ensureUser(ctx context.Context, u models.User) error {
	existing, err := a.Users.GetUser(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = a.Users.UpsertUser(ctx, &u)
	return err
}

func mockRoles() []string {
	return []string{"mentee", "mentor", "both"}
}
