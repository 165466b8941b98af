package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tysencreager/MicroMentor/internal/config"
	"github.com/tysencreager/MicroMentor/internal/db"
	"github.com/tysencreager/MicroMentor/internal/insights"
	"github.com/tysencreager/MicroMentor/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB, gen insights.Generator) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(d, logger)

	// Authentication collaborator, chosen at composition time
	var authenticator Authenticator
	if cfg.AuthMode == config.AuthModeMock {
		authenticator = &MockAuthenticator{Users: repo}
	} else {
		authenticator = &JWTAuthenticator{Secret: cfg.JWTSecret}
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, gen, cfg.JWTSecret, cfg.TokenDuration)
	questionsHandler := NewQuestionsHandler(repo)
	answersHandler := NewAnswersHandler(repo, repo, gen)
	mentorsHandler := NewMentorsHandler(repo)
	applicationsHandler := NewApplicationsHandler(repo, repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/mentors", mentorsHandler.ListMentors).Methods("GET")
	r.HandleFunc("/api/logout", authHandler.Logout).Methods("GET", "POST")

	// Provider-specific login endpoints
	if cfg.AuthMode == config.AuthModeMock {
		r.HandleFunc("/api/login", authHandler.MockLoginIndex).Methods("GET")
		r.HandleFunc("/api/mock-login/{role}", func(w http.ResponseWriter, req *http.Request) {
			authHandler.MockLogin(w, req, mux.Vars(req)["role"])
		}).Methods("GET")
	} else {
		r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
		r.HandleFunc("/api/auth/signin", authHandler.Signin).Methods("POST")
	}

	// Authenticated routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(RequireIdentity(authenticator))

	protected.HandleFunc("/auth/user", authHandler.GetAuthUser).Methods("GET")

	protected.HandleFunc("/questions", questionsHandler.CreateQuestion).Methods("POST")
	protected.HandleFunc("/questions/mentee", questionsHandler.ListMenteeQuestions).Methods("GET")
	protected.HandleFunc("/questions/pending", questionsHandler.ListPendingQuestions).Methods("GET")

	protected.HandleFunc("/answers", answersHandler.CreateAnswer).Methods("POST")
	protected.HandleFunc("/answers/mentor", answersHandler.ListMentorAnswers).Methods("GET")
	protected.HandleFunc("/answers/{id}/helpful", func(w http.ResponseWriter, req *http.Request) {
		answersHandler.MarkHelpful(w, req, mux.Vars(req)["id"])
	}).Methods("PATCH")

	protected.HandleFunc("/mentors/profile", mentorsHandler.CreateProfile).Methods("POST")
	protected.HandleFunc("/mentors/profile", mentorsHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/mentors/profile", mentorsHandler.UpdateProfile).Methods("PATCH")

	protected.HandleFunc("/mentors/apply", applicationsHandler.Apply).Methods("POST")
	protected.HandleFunc("/mentors/application", applicationsHandler.GetOwnApplication).Methods("GET")
	protected.HandleFunc("/mentors/application/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		applicationsHandler.UpdateStatus(w, req, mux.Vars(req)["id"])
	}).Methods("PATCH")

	protected.HandleFunc("/admin/applications", applicationsHandler.ListApplications).Methods("GET")

	return r
}
