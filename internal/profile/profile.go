// Package profile pulls contact and education fields out of raw resume text
// with plain heuristics. Everything here is best effort: a field that cannot
// be located is simply left empty.
package profile

import (
	"regexp"
	"strings"
)

// Profile holds the structured fields extracted from a resume.
type Profile struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Education []string `json:"education,omitempty"`
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-()]{8,}\d`)
)

var educationKeywords = []string{
	"bachelor", "master", "phd", "mba", "btech", "mtech",
	"intermediate", "high school", "diploma",
}

// Extract scans the text for contact details, a candidate name and education
// lines.
func Extract(text string) *Profile {
	p := &Profile{
		Email:     emailPattern.FindString(text),
		Phone:     strings.TrimSpace(phonePattern.FindString(text)),
		Education: educationLines(text),
		Name:      nameLine(text),
	}
	return p
}

// educationLines returns the distinct lines mentioning a degree keyword,
// lower-cased, in document order.
func educationLines(text string) []string {
	seen := make(map[string]struct{})
	var lines []string

	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, keyword := range educationKeywords {
			if strings.Contains(line, keyword) {
				if _, ok := seen[line]; !ok {
					seen[line] = struct{}{}
					lines = append(lines, line)
				}
				break
			}
		}
	}

	return lines
}

// nameLine guesses the candidate name: the first short line without digits or
// an email address, which is where resumes usually put it.
func nameLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 60 || strings.ContainsAny(line, "0123456789@") {
			return ""
		}
		return line
	}
	return ""
}
