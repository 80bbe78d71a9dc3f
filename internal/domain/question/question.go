package question

import (
	"errors"
	"fmt"
	"strings"
)

// OptionCount is the fixed number of answer options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question. Questions are immutable once
// loaded; sessions reference them and never mutate them. The JSON tags match
// the source file format verbatim.
type Question struct {
	Text          string   `json:"pregunta"`
	Options       []string `json:"opciones"`
	CorrectAnswer string   `json:"respuestaCorrecta"`
	MustKnow      bool     `json:"imprescindible,omitempty"`
	ExamID        string   `json:"examen,omitempty"`
}

// NormalizeText produces the uniqueness key for a question text. Two questions
// are the same question iff their normalized texts are equal.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Validate checks the structural rules for a loaded question.
func (q Question) Validate() error {
	var errs []error

	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, errors.New("question text is empty"))
	}

	if len(q.Options) != OptionCount {
		errs = append(errs, fmt.Errorf("expected %d options, got %d", OptionCount, len(q.Options)))
	}

	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt] {
			errs = append(errs, fmt.Errorf("duplicate option %q", opt))
		}
		seen[opt] = true
	}

	if strings.TrimSpace(q.CorrectAnswer) == "" {
		errs = append(errs, errors.New("correct answer is empty"))
	} else if !seen[q.CorrectAnswer] {
		errs = append(errs, fmt.Errorf("correct answer %q is not among the options", q.CorrectAnswer))
	}

	return errors.Join(errs...)
}
