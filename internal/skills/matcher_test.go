package skills

import "testing"

func TestExtractExactMatch(t *testing.T) {
	t.Parallel()

	matches := Extract("Experienced Python developer, knows Docker and Flask.", fallbackSkills)

	byName := matchesByName(matches)
	for _, skill := range []string{"python", "docker", "flask"} {
		m, ok := byName[skill]
		if !ok {
			t.Fatalf("expected %q to be extracted, got %v", skill, matches)
		}
		if m.MatchType != MatchExact {
			t.Fatalf("expected %q to be an exact match, got %q", skill, m.MatchType)
		}
		if m.Score != 100 {
			t.Fatalf("expected score 100 for %q, got %d", skill, m.Score)
		}
		if m.Weight != 1.0 {
			t.Fatalf("expected weight 1.0 for %q, got %v", skill, m.Weight)
		}
	}
}

func TestExtractFuzzyMisspelling(t *testing.T) {
	t.Parallel()

	matches := Extract("Experienced pyhton developer with flask", fallbackSkills)

	m, ok := matchesByName(matches)["python"]
	if !ok {
		t.Fatalf("expected misspelled python to be extracted, got %v", matches)
	}
	if m.MatchType != MatchFuzzy {
		t.Fatalf("expected a fuzzy match, got %q", m.MatchType)
	}
	if m.Score < 80 {
		t.Fatalf("expected fuzzy score >= 80, got %d", m.Score)
	}
}

func TestExtractWholeWordsOnly(t *testing.T) {
	t.Parallel()

	matches := Extract("javascript experience only", fallbackSkills)
	byName := matchesByName(matches)

	js, ok := byName["javascript"]
	if !ok || js.MatchType != MatchExact {
		t.Fatalf("expected javascript as an exact match, got %v", matches)
	}

	// "java" is embedded in "javascript" and must not count as an exact
	// word match; the fuzzy pass may still admit it.
	if java, ok := byName["java"]; ok && java.MatchType == MatchExact {
		t.Fatalf("expected java not to be an exact match inside javascript")
	}
}

func TestExtractSkillsSectionBoost(t *testing.T) {
	t.Parallel()

	text := "Skills:\nDocker, Flask\n\nOther notes follow here."
	matches := Extract(text, fallbackSkills)
	byName := matchesByName(matches)

	for _, skill := range []string{"docker", "flask"} {
		m, ok := byName[skill]
		if !ok {
			t.Fatalf("expected %q from the skills section, got %v", skill, matches)
		}
		if m.Weight != 1.2 {
			t.Fatalf("expected boosted weight 1.2 for %q, got %v", skill, m.Weight)
		}
	}
}

func TestExtractMergeKeepsSectionEntryWithMaxScore(t *testing.T) {
	t.Parallel()

	// The exact mention lives before the heading, so the section excerpt
	// only sees the misspelling.
	text := "python expert\n\nSkills:\npyhton"
	matches := Extract(text, fallbackSkills)

	m, ok := matchesByName(matches)["python"]
	if !ok {
		t.Fatalf("expected python to be extracted, got %v", matches)
	}
	if m.Weight != 1.2 {
		t.Fatalf("expected the section weight to win, got %v", m.Weight)
	}
	if m.MatchType != MatchFuzzy {
		t.Fatalf("expected the section match type to win, got %q", m.MatchType)
	}
	if m.Score != 100 {
		t.Fatalf("expected the full-document score to win, got %d", m.Score)
	}
}

func TestExtractDeduplicates(t *testing.T) {
	t.Parallel()

	text := "python docker python\n\nSkills:\npython, docker"
	matches := Extract(text, fallbackSkills)

	seen := make(map[string]int)
	for _, m := range matches {
		seen[m.Skill]++
	}
	for skill, count := range seen {
		if count > 1 {
			t.Fatalf("skill %q extracted %d times", skill, count)
		}
	}
}

func TestExtractOrdersByWeightedScore(t *testing.T) {
	t.Parallel()

	dict := Dictionary{"golang", "docker"}
	matches := Extract("golang service\n\nSkills:\ndocker", dict)

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %v", matches)
	}
	if matches[0].Skill != "docker" || matches[1].Skill != "golang" {
		t.Fatalf("expected boosted docker first, got %v", matches)
	}
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	if matches := Extract("", fallbackSkills); len(matches) != 0 {
		t.Fatalf("expected no matches for empty text, got %v", matches)
	}
}

func TestSkillsSection(t *testing.T) {
	t.Parallel()

	if got := skillsSection("no heading anywhere"); got != "" {
		t.Fatalf("expected empty section, got %q", got)
	}

	got := skillsSection("Intro\nTechnical Skills:\npython, docker")
	if got != "\npython, docker" {
		t.Fatalf("unexpected section excerpt: %q", got)
	}
}

func matchesByName(matches []Match) map[string]Match {
	byName := make(map[string]Match, len(matches))
	for _, m := range matches {
		byName[m.Skill] = m
	}
	return byName
}
