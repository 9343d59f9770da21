package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"proposal-backend/internal/llm"
)

func TestGenerateKnownPersona(t *testing.T) {
	var captured []llm.Message
	client := llm.Func(func(ctx context.Context, messages []llm.Message, model string) (string, error) {
		captured = messages
		return "  1. Scientific/Technical Merit Score: 4/5\n- Solid methodology.  ", nil
	})

	fb, err := Generate(context.Background(), client, "test-model", PersonaSeniorScientist, "proposal body", "call body")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fb.Reviewer != PersonaSeniorScientist {
		t.Fatalf("reviewer = %q", fb.Reviewer)
	}
	if strings.HasPrefix(fb.Text, " ") || strings.HasSuffix(fb.Text, " ") {
		t.Fatalf("feedback text not trimmed: %q", fb.Text)
	}

	if len(captured) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(captured))
	}
	user := captured[1].Content
	if !strings.Contains(user, "--- PROPOSAL TEXT TO REVIEW ---") {
		t.Fatalf("user prompt missing proposal header:\n%s", user)
	}
	if !strings.Contains(user, "CALL FOR PROPOSAL TEXT (FOR CONTEXT ONLY)") {
		t.Fatalf("user prompt missing call context header:\n%s", user)
	}
}

func TestGenerateOmitsCallSectionWhenEmpty(t *testing.T) {
	client := llm.Func(func(ctx context.Context, messages []llm.Message, model string) (string, error) {
		if strings.Contains(messages[1].Content, "CALL FOR PROPOSAL TEXT") {
			t.Error("call section should be omitted when call text is empty")
		}
		return "feedback", nil
	})
	if _, err := Generate(context.Background(), client, "m", PersonaProgramManager, "proposal", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerateUnknownPersona(t *testing.T) {
	client := llm.Func(func(ctx context.Context, messages []llm.Message, model string) (string, error) {
		t.Error("client must not be called for an unknown persona")
		return "", nil
	})
	_, err := Generate(context.Background(), client, "m", "Random Person", "proposal", "")
	if err == nil {
		t.Fatal("expected error for unknown persona")
	}
}

func TestGeneratePropagatesGatewayError(t *testing.T) {
	client := llm.Func(func(ctx context.Context, messages []llm.Message, model string) (string, error) {
		return "", errors.New("boom")
	})
	_, err := Generate(context.Background(), client, "m", PersonaEarlyCareer, "proposal", "")
	if err == nil {
		t.Fatal("expected gateway error to propagate")
	}
}

func TestPersonasAllHavePrompts(t *testing.T) {
	for _, p := range Personas {
		if _, ok := personaPrompts[p]; !ok {
			t.Fatalf("persona %q has no prompt", p)
		}
	}
}
