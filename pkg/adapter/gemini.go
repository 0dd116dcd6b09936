package adapter

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathwise-dev/pathwise/pkg/model"
	"google.golang.org/genai"
)

// ErrGenerativeUnavailable marks any failure of the generative provider:
// unreachable endpoint, authentication error, rate limit or timeout. The
// orchestrator absorbs it by downgrading to a deterministic reply; it never
// reaches the end user as an error.
var ErrGenerativeUnavailable = goerr.New("generative provider unavailable")

// Responder generates free-text advice for a user message, given the
// session's bounded conversation history. It is the only component that
// performs network I/O and the only one permitted to fail for reasons
// outside program logic.
type Responder interface {
	Generate(ctx context.Context, persona string, history []model.Turn, message string) (string, error)
}

type GeminiClient struct {
	client          *genai.Client
	generativeModel string
	temperature     float32
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(m string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = m
	}
}

func WithTemperature(t float32) GeminiOption {
	return func(g *GeminiClient) {
		g.temperature = t
	}
}

func NewGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-2.5-flash",
		temperature:     0.7,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Generate replays the session history to the model so advice stays
// conversationally consistent, then sends the new user message. The caller
// bounds the call with a context deadline.
func (g *GeminiClient) Generate(ctx context.Context, persona string, history []model.Turn, message string) (string, error) {
	contents := conversationContents(history, message)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(persona, ""),
		Temperature:       &g.temperature,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.generativeModel, contents, config)
	if err != nil {
		return "", goerr.Wrap(ErrGenerativeUnavailable, "failed to generate content", goerr.V("cause", err.Error()))
	}

	text := responseText(resp)
	if text == "" {
		return "", goerr.Wrap(ErrGenerativeUnavailable, "empty generation response")
	}

	return text, nil
}

// conversationContents maps the session history to genai contents, with the
// new user message appended last. Assistant turns replay under the model
// role.
func conversationContents(history []model.Turn, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}
