package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tysencreager/MicroMentor/internal/insights"
	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
)

type AnswersHandler struct {
	answerRepo   repository.AnswerRepo
	questionRepo repository.QuestionRepo
	gen          insights.Generator
}

func NewAnswersHandler(ar repository.AnswerRepo, qr repository.QuestionRepo, gen insights.Generator) *AnswersHandler {
	return &AnswersHandler{answerRepo: ar, questionRepo: qr, gen: gen}
}

type createAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

// CreateAnswer persists a mentor's answer, flips the question to answered,
// and attaches AI insights. The answer insert and the status flip are one
// transaction; the insight attachment is best-effort and never fails the
// request.
func (h *AnswersHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req createAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(req.Text) < 20 {
		writeError(w, "Answer must be at least 20 characters", http.StatusBadRequest)
		return
	}
	if req.QuestionID == "" {
		writeError(w, "questionId is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	question, err := h.questionRepo.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		logger.Error("fetch question", "err", err)
		writeError(w, "Failed to fetch question", http.StatusInternalServerError)
		return
	}
	if question == nil {
		writeError(w, "Question not found", http.StatusNotFound)
		return
	}

	answer, err := h.answerRepo.CreateAnswer(ctx, &models.Answer{
		QuestionID: question.ID,
		MentorID:   UserIDFromContext(ctx),
		Text:       req.Text,
	})
	if err != nil {
		logger.Error("create answer", "err", err)
		writeError(w, "Failed to store answer", http.StatusInternalServerError)
		return
	}

	ins := h.gen.GenerateInsights(ctx, question.Text, answer.Text)
	if err := h.answerRepo.UpdateAnswerInsights(ctx, answer.ID, ins); err != nil {
		// the answer stands without insights; nothing retries this
		logger.Error("attach insights", "err", err, "answer_id", answer.ID)
	} else {
		answer.AIInsights = ins
	}

	writeJSON(w, answer, http.StatusCreated)
}

type helpfulRequest struct {
	Helpful *bool `json:"helpful"`
}

// MarkHelpful records mentee feedback on an answer.
func (h *AnswersHandler) MarkHelpful(w http.ResponseWriter, r *http.Request, answerID string) {
	var req helpfulRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Helpful == nil {
		writeError(w, "helpful is required", http.StatusBadRequest)
		return
	}

	if err := h.answerRepo.SetAnswerHelpful(r.Context(), answerID, *req.Helpful); err != nil {
		writeError(w, "Answer not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnswersHandler) ListMentorAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.answerRepo.ListAnswersByMentor(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		logger.Error("list mentor answers", "err", err)
		writeError(w, "Failed to list answers", http.StatusInternalServerError)
		return
	}

	writeJSON(w, answers, http.StatusOK)
}
