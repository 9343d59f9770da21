package analysis

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadQuestions reads compliance questions from a text file, one per
// line, skipping blank lines. Question order is preserved; it defines
// result order for the whole run.
func LoadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer f.Close()
	return ParseQuestions(f)
}

// ParseQuestions reads one trimmed, non-blank question per line.
func ParseQuestions(r io.Reader) ([]string, error) {
	var questions []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return questions, nil
}
