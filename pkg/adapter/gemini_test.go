package adapter

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pathwise-dev/pathwise/pkg/model"
	"google.golang.org/genai"
)

func TestConversationContents(t *testing.T) {
	history := []model.Turn{
		model.NewTurn(model.RoleUser, "what does a data scientist do?"),
		model.NewTurn(model.RoleAssistant, "They analyze data to answer business questions."),
		model.NewTurn(model.RoleUser, "what should I learn first?"),
	}

	contents := conversationContents(history, "is statistics enough?")
	gt.A(t, contents).Length(4)

	gt.Equal(t, contents[0].Role, "user")
	gt.Equal(t, contents[1].Role, "model")
	gt.Equal(t, contents[2].Role, "user")
	gt.Equal(t, contents[3].Role, "user")

	gt.Equal(t, contents[0].Parts[0].Text, "what does a data scientist do?")
	gt.Equal(t, contents[3].Parts[0].Text, "is statistics enough?")
}

func TestConversationContentsEmptyHistory(t *testing.T) {
	contents := conversationContents(nil, "hello")
	gt.A(t, contents).Length(1)
	gt.Equal(t, contents[0].Role, "user")
	gt.Equal(t, contents[0].Parts[0].Text, "hello")
}

func TestResponseText(t *testing.T) {
	gt.Equal(t, responseText(nil), "")
	gt.Equal(t, responseText(&genai.GenerateContentResponse{}), "")
	gt.Equal(t, responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}), "")

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Focus on statistics first."},
						{},
						{Text: "Then pick up Python."},
					},
				},
			},
		},
	}
	gt.Equal(t, responseText(resp), "Focus on statistics first.\nThen pick up Python.")
}
