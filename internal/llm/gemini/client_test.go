package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestTextFromResponseJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("```json\n{"), genai.Text("\"atsScore\":85}\n```  ")}},
		}},
	}
	got, err := textFromResponse(resp)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if got != "```json\n{\"atsScore\":85}\n```" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextFromResponseEmpty(t *testing.T) {
	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}}},
	}
	for i, resp := range cases {
		if _, err := textFromResponse(resp); !errors.Is(err, errEmptyResponse) {
			t.Fatalf("case %d: expected errEmptyResponse, got %v", i, err)
		}
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
