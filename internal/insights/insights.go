// Package insights turns a question/answer pair into key takeaways and action
// steps for the mentee, backed by an Ollama model with an unconditional
// canned fallback.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qri-io/jsonschema"
	"github.com/tysencreager/MicroMentor/internal/config"
	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/ollama"
)

// Generator is the collaborator contract used by the API layer.
type Generator interface {
	// GenerateInsights never fails: on any model error the canned fallback
	// payload is returned.
	GenerateInsights(ctx context.Context, question, answer string) *models.Insights
	// WelcomeMessage greets a new user; degrades to a deterministic string.
	WelcomeMessage(ctx context.Context, name string, interests []string) string
}

const insightsPrompt = `You are an expert mentor coach analyzing a mentorship interaction.

Question from mentee: "{{.Question}}"

Mentor's answer: "{{.Answer}}"

Based on this mentorship interaction, provide:
1. 3-4 key takeaways that capture the most important insights from the mentor's answer
2. 3-5 specific, actionable steps the mentee should take next

Format your response as JSON with this structure:
{
  "keyTakeaways": ["takeaway 1", "takeaway 2", "takeaway 3"],
  "actionSteps": ["action 1", "action 2", "action 3", "action 4", "action 5"]
}

Make the takeaways insightful and the action steps specific, measurable, and realistic.`

const welcomePrompt = `Write a warm, encouraging welcome message (2-3 sentences) for {{.Name}} who just joined a mentorship platform and is interested in: {{.Interests}}. Reply with the message text only.`

// insightsSchema bounds the payload shape: 3-4 takeaways, 3-5 action steps.
const insightsSchema = `{
	"type": "object",
	"required": ["keyTakeaways", "actionSteps"],
	"properties": {
		"keyTakeaways": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"minItems": 3,
			"maxItems": 4
		},
		"actionSteps": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"minItems": 3,
			"maxItems": 5
		}
	}
}`

// Engine generates insights through an Ollama model. A nil client is valid
// and means every call degrades to the fallback.
type Engine struct {
	client *ollama.Client
	model  string
	schema *jsonschema.Schema
	logger *slog.Logger
}

// NewEngine builds an insight engine from the AI configuration. When the base
// URL is unset the engine runs in fallback-only mode.
func NewEngine(cfg config.AIConfig, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(insightsSchema), schema); err != nil {
		return nil, fmt.Errorf("compile insights schema: %w", err)
	}

	e := &Engine{model: cfg.Model, schema: schema, logger: logger}
	if cfg.BaseURL == "" {
		logger.Warn("insights: no model endpoint configured, using canned responses")
		return e, nil
	}

	client, err := ollama.NewClient(cfg.BaseURL, cfg.Timeout, nil)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	e.client = client

	return e, nil
}

// Close releases the underlying model client, if any.
func (e *Engine) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

func (e *Engine) GenerateInsights(ctx context.Context, question, answer string) *models.Insights {
	ins, err := e.generate(ctx, question, answer)
	if err != nil {
		e.logger.Error("insights generation failed, using fallback", slog.Any("err", err))
		return Fallback()
	}
	return ins
}

func (e *Engine) generate(ctx context.Context, question, answer string) (*models.Insights, error) {
	if e.client == nil {
		return nil, errors.New("model client not configured")
	}

	prompt, err := ollama.RenderTemplate(insightsPrompt, map[string]any{"Question": question, "Answer": answer})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	out, err := e.client.Generate(ctx, e.model, prompt)
	if err != nil {
		return nil, err
	}

	return e.Parse(ctx, out)
}

// Parse extracts the JSON payload from raw model output and validates it
// against the insights schema.
func (e *Engine) Parse(ctx context.Context, raw string) (*models.Insights, error) {
	j := extractJSON(raw)
	if j == "" {
		return nil, errors.New("no JSON object found in response")
	}

	verrs, err := e.schema.ValidateBytes(ctx, []byte(j))
	if err != nil {
		return nil, fmt.Errorf("schema validate: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return nil, fmt.Errorf("response does not match schema: %s", sb.String())
	}

	var ins models.Insights
	if err := json.Unmarshal([]byte(j), &ins); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	return &ins, nil
}

func (e *Engine) WelcomeMessage(ctx context.Context, name string, interests []string) string {
	fallback := fmt.Sprintf("Welcome to MicroMentor, %s!", name)
	if len(interests) > 0 {
		fallback = fmt.Sprintf("Welcome to MicroMentor, %s! We're excited to help you grow in %s.", name, strings.Join(interests, ", "))
	}
	if e.client == nil {
		return fallback
	}

	prompt, err := ollama.RenderTemplate(welcomePrompt, map[string]any{"Name": name, "Interests": strings.Join(interests, ", ")})
	if err != nil {
		return fallback
	}
	out, err := e.client.Generate(ctx, e.model, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}

	return strings.TrimSpace(out)
}

// Fallback is the canned payload substituted when the model is unavailable
// or returns garbage.
func Fallback() *models.Insights {
	return &models.Insights{
		KeyTakeaways: []string{
			"Focus on building skills through consistent practice",
			"Leverage your unique perspective as a competitive advantage",
			"Build relationships with people who have walked similar paths",
		},
		ActionSteps: []string{
			"Schedule 30 minutes this week to practice your pitch",
			"Research 3-5 role models in your target industry",
			"Reach out to 2 professionals for informational interviews",
			"Document your progress and reflect weekly",
			"Join a relevant professional community or group",
		},
	}
}

// extractJSON returns the substring from the first '{' to the last '}' in the
// input. This is a pragmatic approach to handle model outputs that wrap JSON
// in text or markdown.
func extractJSON(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
