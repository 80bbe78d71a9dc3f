// Command validate checks question bank files for structural problems:
// missing fields, wrong option counts, duplicate options, answers that are
// not among the options, and duplicate question texts across files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/examtrainer/backend/internal/domain/question"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing question JSON files")
	files := flag.String("files", "", "Comma-separated file names to validate (defaults to all *.json in -dir)")
	flag.Parse()

	names := splitList(*files)
	if len(names) == 0 {
		matches, err := filepath.Glob(filepath.Join(*dir, "*.json"))
		if err != nil || len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no JSON files found in %s\n", *dir)
			os.Exit(1)
		}
		for _, m := range matches {
			names = append(names, filepath.Base(m))
		}
	}

	var problems []string
	seenTexts := make(map[string]string) // normalized text → first "file #n"

	for _, name := range names {
		path := filepath.Join(*dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, fmt.Sprintf("[%s] cannot read file: %v", name, err))
			continue
		}

		var questions []question.Question
		if err := json.Unmarshal(data, &questions); err != nil {
			problems = append(problems, fmt.Sprintf("[%s] invalid JSON: %v", name, err))
			continue
		}

		fmt.Printf("%s: %d questions\n", name, len(questions))

		for i, q := range questions {
			where := fmt.Sprintf("%s #%d", name, i+1)

			if err := q.Validate(); err != nil {
				problems = append(problems, fmt.Sprintf("[%s] %v", where, err))
			}

			key := question.NormalizeText(q.Text)
			if key == "" {
				continue
			}
			if first, dup := seenTexts[key]; dup {
				problems = append(problems, fmt.Sprintf("[%s] duplicate of %s: %q", where, first, q.Text))
			} else {
				seenTexts[key] = where
			}
		}
	}

	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "%d problems found:\n", len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "- %s\n", p)
		}
		os.Exit(1)
	}

	fmt.Printf("All %d files valid, %d distinct questions.\n", len(names), len(seenTexts))
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
