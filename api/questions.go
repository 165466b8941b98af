package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
)

type QuestionsHandler struct {
	questionRepo repository.QuestionRepo
}

func NewQuestionsHandler(qr repository.QuestionRepo) *QuestionsHandler {
	return &QuestionsHandler{questionRepo: qr}
}

type createQuestionRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	IsPublic bool   `json:"isPublic"`
}

func (h *QuestionsHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(req.Text) < 10 {
		writeError(w, "Question must be at least 10 characters", http.StatusBadRequest)
		return
	}
	if !models.ValidQuestionCategory(req.Category) {
		writeError(w, "Invalid category", http.StatusBadRequest)
		return
	}

	question, err := h.questionRepo.CreateQuestion(r.Context(), &models.Question{
		MenteeID: UserIDFromContext(r.Context()),
		Text:     req.Text,
		Category: req.Category,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		logger.Error("create question", "err", err)
		writeError(w, "Failed to store question", http.StatusInternalServerError)
		return
	}

	writeJSON(w, question, http.StatusCreated)
}

// ListMenteeQuestions returns the caller's questions newest first, each with
// its answers and the answering mentors' profiles.
func (h *QuestionsHandler) ListMenteeQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionRepo.ListQuestionsByMentee(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		logger.Error("list mentee questions", "err", err)
		writeError(w, "Failed to list questions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, questions, http.StatusOK)
}

func (h *QuestionsHandler) ListPendingQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionRepo.ListPendingQuestions(r.Context())
	if err != nil {
		logger.Error("list pending questions", "err", err)
		writeError(w, "Failed to list questions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, questions, http.StatusOK)
}
