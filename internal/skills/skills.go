package skills

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Dictionary is an ordered list of canonical, lower-cased skill names.
type Dictionary []string

// fallback vocabulary used when no dictionary file is configured.
var fallbackSkills = Dictionary{
	"python", "c++", "java", "sql", "flask", "django", "react", "node.js",
	"tensorflow", "pandas", "numpy", "git", "docker", "kubernetes",
	"machine learning", "data analysis", "aws", "azure", "html", "css",
	"javascript",
}

// ConfigError reports an unusable skill dictionary source.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("skill dictionary %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load reads a skill dictionary from a CSV file with a "skill" column, one
// skill per row. An empty path returns the built-in fallback vocabulary.
func Load(path string) (Dictionary, error) {
	if strings.TrimSpace(path) == "" {
		return append(Dictionary(nil), fallbackSkills...), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	column := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "skill") {
			column = i
			break
		}
	}
	if column == -1 {
		return nil, &ConfigError{Path: path, Err: errors.New(`missing "skill" column`)}
	}

	var dict Dictionary
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
		if column >= len(row) {
			continue
		}
		skill := strings.ToLower(strings.TrimSpace(row[column]))
		if skill == "" {
			continue
		}
		dict = append(dict, skill)
	}

	return dict, nil
}

var (
	newlinesPattern   = regexp.MustCompile(`[\r\n]+`)
	disallowedPattern = regexp.MustCompile(`[^a-z0-9.+\s\-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases the text and reduces it to the characters the matcher
// operates on: letters, digits, dot, plus, dash and single spaces. It never
// fails and is idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = newlinesPattern.ReplaceAllString(text, " ")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
