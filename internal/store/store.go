package store

import (
	"errors"

	"github.com/examtrainer/backend/internal/domain/question"
)

var (
	ErrNotFound = errors.New("not found")
)

// Key is a logical persistence key. Components depend on this closed set and
// SessionKey; nobody builds raw key strings.
type Key string

const (
	KeyHighScore       Key = "highScore"
	KeyRotationPool    Key = "rotationPool"
	KeyFailedQuestions Key = "failedQuestions"

	// User preferences share the gateway but are not core session state.
	// They form the non-essential set evicted when a write fails.
	KeyTheme         Key = "theme"
	KeySoundMuted    Key = "soundMuted"
	KeyQuestionCount Key = "questionCount"
)

// SessionKey returns the snapshot key for a test mode. One durable session
// snapshot exists per mode at most.
func SessionKey(mode question.Mode) Key {
	return Key("session:" + string(mode))
}

// nonEssential keys may be dropped to recover storage space after a failed
// write. Losing them costs a preference, never progress.
var nonEssential = []Key{KeyTheme, KeySoundMuted, KeyQuestionCount}

// Store is the key-value persistence gateway. Values are JSON-encoded; Get
// unmarshals into v and returns ErrNotFound for absent keys.
type Store interface {
	Get(key Key, v any) error
	Set(key Key, v any) error
	Delete(key Key) error
	Close() error
}
