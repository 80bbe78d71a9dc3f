package session

import (
	"github.com/examtrainer/backend/internal/domain/question"
)

// AnsweredRecord captures one incorrectly answered question within a session.
// Records key on the question's global index: re-answering the same question
// wrong twice in one session adds no second record.
type AnsweredRecord struct {
	QuestionIndex int               `json:"questionIndex"`
	Question      question.Question `json:"question"`
	UserAnswer    string            `json:"userAnswer"`
}

// Snapshot is the full serializable state of one in-progress test attempt.
// It is created at session start, mutated only by the Engine, and destroyed
// when the session finishes or is abandoned. At most one snapshot per mode
// is persisted at a time.
type Snapshot struct {
	ID              string              `json:"id"`
	Mode            question.Mode       `json:"mode"`
	Questions       []question.Question `json:"questions"`
	CurrentIndex    int                 `json:"currentIndex"`
	Score           float64             `json:"score"`
	CorrectCount    int                 `json:"correctCount"`
	IncorrectCount  int                 `json:"incorrectCount"`
	AnsweredCurrent bool                `json:"answeredCurrent"`
	Failures        []AnsweredRecord    `json:"failures"`
}

// Current returns the question at the current position. Only valid while
// Finished is false.
func (s *Snapshot) Current() question.Question {
	return s.Questions[s.CurrentIndex]
}

// Finished reports that the position has moved past the last question and the
// session is pending finalize.
func (s *Snapshot) Finished() bool {
	return s.CurrentIndex >= len(s.Questions)
}

func (s *Snapshot) hasFailure(globalIndex int) bool {
	for _, rec := range s.Failures {
		if rec.QuestionIndex == globalIndex {
			return true
		}
	}
	return false
}
