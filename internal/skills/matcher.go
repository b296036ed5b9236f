package skills

import (
	"regexp"
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// MatchExact marks a skill found as a whole word in the text.
	MatchExact = "exact"
	// MatchFuzzy marks a skill admitted by partial-ratio similarity.
	MatchFuzzy = "fuzzy"

	// Thresholds for the fuzzy pass. The skills section is scanned with a
	// looser threshold because the author listed those entries deliberately.
	fullTextThreshold = 80
	sectionThreshold  = 70

	sectionWeight = 1.2
	sectionWindow = 800
)

// Match is a single skill found in a document.
type Match struct {
	Skill     string  `json:"skill"`
	MatchType string  `json:"match_type"`
	Score     int     `json:"score"`
	Weight    float64 `json:"weight"`
}

var sectionHeading = regexp.MustCompile(`(?i)(skills|technical skills|skillset)(:|\n)`)

// Extract finds dictionary skills in the raw text. The skills section, when
// one is detected, is scanned first with boosted weight; the full document
// pass then fills in the rest. A skill present in both keeps the section
// entry but takes the higher of the two scores. The result is deduplicated
// and sorted by score*weight descending, insertion order breaking ties.
func Extract(text string, dict Dictionary) []Match {
	section := make(map[string]Match)
	if excerpt := skillsSection(text); excerpt != "" {
		section = matchText(excerpt, dict, sectionThreshold)
		for skill, m := range section {
			m.Weight = sectionWeight
			section[skill] = m
		}
	}

	full := matchText(text, dict, fullTextThreshold)

	merged := make([]Match, 0, len(full)+len(section))
	for _, skill := range dict {
		m, ok := section[skill]
		if !ok {
			continue
		}
		if fm, ok := full[skill]; ok && fm.Score > m.Score {
			m.Score = fm.Score
		}
		merged = append(merged, m)
	}
	for _, skill := range dict {
		if _, ok := section[skill]; ok {
			continue
		}
		if m, ok := full[skill]; ok {
			merged = append(merged, m)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return float64(merged[i].Score)*merged[i].Weight > float64(merged[j].Score)*merged[j].Weight
	})

	return merged
}

// matchText runs the two-pass match over normalized text: exact word-boundary
// matches first, then a fuzzy partial-ratio pass for the remaining skills.
// Exact matches are never downgraded by a lower fuzzy score.
func matchText(text string, dict Dictionary, threshold int) map[string]Match {
	norm := Normalize(text)
	found := make(map[string]Match)
	if norm == "" {
		return found
	}

	for _, skill := range dict {
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(skill) + `\b`)
		if err != nil {
			continue
		}
		if pattern.MatchString(norm) {
			found[skill] = Match{Skill: skill, MatchType: MatchExact, Score: 100, Weight: 1.0}
		}
	}

	for _, skill := range dict {
		if _, ok := found[skill]; ok {
			continue
		}
		ratio := fuzzy.PartialRatio(skill, norm)
		if ratio >= threshold {
			found[skill] = Match{Skill: skill, MatchType: MatchFuzzy, Score: ratio, Weight: 1.0}
		}
	}

	return found
}

// skillsSection returns up to sectionWindow characters following the first
// recognized skills heading, or an empty string when no heading is present.
func skillsSection(text string) string {
	loc := sectionHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	start := loc[1]
	end := start + sectionWindow
	if end > len(text) {
		end = len(text)
	}

	return text[start:end]
}
