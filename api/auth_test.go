package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tysencreager/MicroMentor/api"
	dbfs "github.com/tysencreager/MicroMentor/db"
	"github.com/tysencreager/MicroMentor/internal/config"
	"github.com/tysencreager/MicroMentor/internal/db"
	"github.com/tysencreager/MicroMentor/internal/insights"
	"github.com/tysencreager/MicroMentor/pkg/models"
)

// setupJWTServer is setupServer with token auth instead of the mock cookie.
func setupJWTServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, d, dbfs.Migrations))

	engine, err := insights.NewEngine(config.AIConfig{}, nil)
	require.NoError(t, err)

	cfg := &config.Config{
		AuthMode:      config.AuthModeJWT,
		JWTSecret:     "testsecret",
		TokenDuration: time.Hour,
	}
	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "now", d, engine))
	return srv, func() { srv.Close(); d.Close() }
}

func doBearer(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()
	req := newJSONRequest(t, srv, method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return execute(t, req, out)
}

func TestSignupAndSignin(t *testing.T) {
	srv, cleanup := setupJWTServer(t)
	defer cleanup()

	signup := map[string]any{
		"email":     "ada@example.com",
		"password":  "hunter22",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"interests": []string{"career"},
	}

	var created struct {
		Token          string       `json:"token"`
		User           *models.User `json:"user"`
		WelcomeMessage string       `json:"welcomeMessage"`
	}
	res := doBearer(t, srv, http.MethodPost, "/api/auth/signup", "", signup, &created)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.NotNil(t, created.User)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, models.RoleMentee, created.User.Role)
	assert.Empty(t, created.User.PasswordHash, "hash must not leak")
	assert.Equal(t, "Welcome to MicroMentor, Ada! We're excited to help you grow in career.", created.WelcomeMessage)

	// duplicate email
	res = doBearer(t, srv, http.MethodPost, "/api/auth/signup", "", signup, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// wrong password
	res = doBearer(t, srv, http.MethodPost, "/api/auth/signin", "",
		map[string]any{"email": "ada@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// correct password
	var signedIn struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	res = doBearer(t, srv, http.MethodPost, "/api/auth/signin", "",
		map[string]any{"email": "ada@example.com", "password": "hunter22"}, &signedIn)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotNil(t, signedIn.User)
	assert.Equal(t, created.User.ID, signedIn.User.ID)

	// the token resolves the caller on protected routes
	var me models.User
	res = doBearer(t, srv, http.MethodGet, "/api/auth/user", signedIn.Token, nil, &me)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, created.User.ID, me.ID)
}

func TestSignup_BadInput(t *testing.T) {
	srv, cleanup := setupJWTServer(t)
	defer cleanup()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"MissingPassword", map[string]any{"email": "a@example.com"}},
		{"MissingEmail", map[string]any{"password": "hunter22"}},
		{"BadRole", map[string]any{"email": "a@example.com", "password": "hunter22", "role": "admin"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := doBearer(t, srv, http.MethodPost, "/api/auth/signup", "", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	srv, cleanup := setupJWTServer(t)
	defer cleanup()

	res := doBearer(t, srv, http.MethodGet, "/api/auth/user", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = doBearer(t, srv, http.MethodGet, "/api/auth/user", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// the open mentor listing needs no token
	res = doBearer(t, srv, http.MethodGet, "/api/mentors", "", nil, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMockAuthFlow(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	// no cookie defaults to the mentee mock user
	var me models.User
	res := doJSON(t, srv, http.MethodGet, "/api/auth/user", "", nil, &me)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "mock-mentee-1", me.ID)
	assert.Equal(t, models.RoleMentee, me.Role)

	// switching to the mentor seeds a default profile
	mockLogin(t, srv, "mentor")
	var mentors []models.MentorWithProfile
	res = doJSON(t, srv, http.MethodGet, "/api/mentors", "", nil, &mentors)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, mentors, 1)
	assert.Equal(t, "mock-mentor-1", mentors[0].ID)
	require.NotNil(t, mentors[0].MentorProfile)
	assert.Equal(t, "Senior Software Engineer", mentors[0].MentorProfile.Title)

	res = doJSON(t, srv, http.MethodGet, "/api/mock-login/wizard", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var index struct {
		AvailableRoles []string     `json:"availableRoles"`
		CurrentUser    *models.User `json:"currentUser"`
	}
	res = doJSON(t, srv, http.MethodGet, "/api/login", "both", nil, &index)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.ElementsMatch(t, []string{"mentee", "mentor", "both"}, index.AvailableRoles)
	require.NotNil(t, index.CurrentUser)
	assert.Equal(t, "mock-both-1", index.CurrentUser.ID)
}

func TestLogout_ClearsCookie(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	res := doJSON(t, srv, http.MethodPost, "/api/logout", "mentor", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var cleared bool
	for _, c := range res.Cookies() {
		if c.Name == "mock_user" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
