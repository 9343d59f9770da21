package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseQuestions(t *testing.T) {
	input := "Does the proposal include a budget?\n\n   \nIs the PI named?   \n# not skipped, plain text\n"
	questions, err := ParseQuestions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	want := []string{
		"Does the proposal include a budget?",
		"Is the PI named?",
		"# not skipped, plain text",
	}
	if !reflect.DeepEqual(questions, want) {
		t.Fatalf("got %v, want %v", questions, want)
	}
}

func TestParseQuestionsEmptyInput(t *testing.T) {
	questions, err := ParseQuestions(strings.NewReader("   \n\n"))
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("got %v", questions)
	}
}

func TestLoadQuestionsMissingFile(t *testing.T) {
	if _, err := LoadQuestions("/nonexistent/questions.txt"); err == nil {
		t.Fatal("expected error")
	}
}
