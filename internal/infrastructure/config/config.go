package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultQuestionFiles mirrors the shipped question bank layout: the general
// bank, past exam papers, and the mock exams.
const defaultQuestionFiles = "preguntas.json,examen_2022.json,examen_2024.json,examen_2025ET.json,simulacro_1.json,simulacro_2.json,simulacro_3.json"

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage and question sources
	DBPath        string
	QuestionDir   string
	QuestionFiles []string

	// QuestionsPerTest is the normal-mode session length.
	QuestionsPerTest int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:    mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:  mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBPath:           getenvDefault("DB_PATH", "examtrainer.db"),
		QuestionDir:      getenvDefault("QUESTION_DIR", "questions"),
		QuestionFiles:    splitList(getenvDefault("QUESTION_FILES", defaultQuestionFiles)),
		QuestionsPerTest: getenvIntDefault("QUESTIONS_PER_TEST", 20),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
