package api_test

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/tysencreager/MicroMentor/internal/insights"
	"github.com/tysencreager/MicroMentor/pkg/models"
)

func TestCreateAnswer_TooShort(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	mockLogin(t, srv, "mentor")

	res := doJSON(t, srv, http.MethodPost, "/api/answers", "mentor",
		map[string]any{"questionId": "whatever", "text": "too short"}, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
}

func TestCreateAnswer_QuestionNotFound(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	mockLogin(t, srv, "mentor")

	res := doJSON(t, srv, http.MethodPost, "/api/answers", "mentor",
		map[string]any{"questionId": "missing-id", "text": "This answer is certainly long enough to pass."}, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}

// With no model endpoint configured the answer still succeeds and carries the
// exact canned fallback payload: 3 takeaways and 5 action steps.
func TestCreateAnswer_FlipsStatusAndAttachesFallbackInsights(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	mockLogin(t, srv, "mentor")

	var q models.Question
	res := doJSON(t, srv, http.MethodPost, "/api/questions", "mentee",
		map[string]any{"text": "How do I speak up more in meetings?", "category": "confidence"}, &q)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create question: got %d", res.StatusCode)
	}

	var a models.Answer
	res = doJSON(t, srv, http.MethodPost, "/api/answers", "mentor",
		map[string]any{"questionId": q.ID, "text": "Prepare one talking point before every meeting and commit to raising it."}, &a)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create answer: got %d", res.StatusCode)
	}
	if a.MentorID != "mock-mentor-1" {
		t.Fatalf("expected mentor id from identity got %q", a.MentorID)
	}

	if a.AIInsights == nil {
		t.Fatal("expected fallback insights on the created answer")
	}
	want := insights.Fallback()
	if len(a.AIInsights.KeyTakeaways) != 3 || len(a.AIInsights.ActionSteps) != 5 {
		t.Fatalf("expected 3 takeaways and 5 action steps, got %d/%d",
			len(a.AIInsights.KeyTakeaways), len(a.AIInsights.ActionSteps))
	}
	if !reflect.DeepEqual(a.AIInsights, want) {
		t.Fatalf("expected canned fallback payload, got %+v", a.AIInsights)
	}

	// parent question is answered now
	var list []models.QuestionWithAnswers
	doJSON(t, srv, http.MethodGet, "/api/questions/mentee", "mentee", nil, &list)
	if len(list) != 1 || list[0].Status != models.QuestionAnswered {
		t.Fatalf("expected answered question, got %+v", list)
	}
}

func TestMarkHelpful(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	mockLogin(t, srv, "mentor")

	var q models.Question
	doJSON(t, srv, http.MethodPost, "/api/questions", "mentee",
		map[string]any{"text": "Should I move into management?", "category": "leadership"}, &q)

	var a models.Answer
	doJSON(t, srv, http.MethodPost, "/api/answers", "mentor",
		map[string]any{"questionId": q.ID, "text": "Try leading a small initiative first and see how it feels."}, &a)

	res := doJSON(t, srv, http.MethodPatch, "/api/answers/"+a.ID+"/helpful", "mentee",
		map[string]any{"helpful": true}, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", res.StatusCode)
	}

	var list []models.QuestionWithAnswers
	doJSON(t, srv, http.MethodGet, "/api/questions/mentee", "mentee", nil, &list)
	got := list[0].Answers[0]
	if got.IsHelpful == nil || !*got.IsHelpful {
		t.Fatalf("expected helpful flag set, got %+v", got.IsHelpful)
	}

	// unknown answer id
	res = doJSON(t, srv, http.MethodPatch, "/api/answers/missing/helpful", "mentee",
		map[string]any{"helpful": false}, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}

func TestListMentorAnswers(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	mockLogin(t, srv, "mentor")

	var q models.Question
	doJSON(t, srv, http.MethodPost, "/api/questions", "mentee",
		map[string]any{"text": "What makes a strong portfolio project?", "category": "technical"}, &q)
	doJSON(t, srv, http.MethodPost, "/api/answers", "mentor",
		map[string]any{"questionId": q.ID, "text": "Pick something you would actually use and ship it end to end."}, nil)

	var answers []models.Answer
	res := doJSON(t, srv, http.MethodGet, "/api/answers/mentor", "mentor", nil, &answers)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list answers: got %d", res.StatusCode)
	}
	if len(answers) != 1 || answers[0].QuestionID != q.ID {
		t.Fatalf("expected the mentor's answer, got %+v", answers)
	}

	// the mentee has no answers
	res = doJSON(t, srv, http.MethodGet, "/api/answers/mentor", "mentee", nil, &answers)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list answers: got %d", res.StatusCode)
	}
	if len(answers) != 0 {
		t.Fatalf("expected no answers for mentee, got %d", len(answers))
	}
}
