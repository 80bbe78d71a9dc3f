package question

import (
	"fmt"
	"strings"
)

// Mode is the category of a test session. Each mode gets its own persisted
// session key; only ModeNormal draws from the rotation pool.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeMustKnow Mode = "mustKnow"
	ModeReview   Mode = "review"
)

// ExamMode returns the mode for replaying a past exam, e.g. ExamMode("2024").
func ExamMode(examID string) Mode {
	return Mode("exam" + examID)
}

// MockMode returns the mode for the nth mock exam.
func MockMode(n int) Mode {
	return Mode(fmt.Sprintf("mock%d", n))
}

func (m Mode) IsExam() bool {
	return strings.HasPrefix(string(m), "exam")
}

func (m Mode) IsMock() bool {
	return strings.HasPrefix(string(m), "mock")
}

// ExamID extracts the exam identifier from an exam-replay mode.
func (m Mode) ExamID() string {
	return strings.TrimPrefix(string(m), "exam")
}

// UsesPool reports whether sessions in this mode consume the rotation pool.
func (m Mode) UsesPool() bool {
	return m == ModeNormal
}

// Shuffled reports whether a fixed question list is randomized at session
// start. Must-know and mock sessions shuffle; review and exam replays keep
// their given order.
func (m Mode) Shuffled() bool {
	return m == ModeMustKnow || m.IsMock()
}

func (m Mode) String() string {
	return string(m)
}
