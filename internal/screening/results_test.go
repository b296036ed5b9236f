package screening

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spigell/resume-screener/internal/profile"
	"github.com/spigell/resume-screener/internal/skills"
)

func sampleBatch() *Screenings {
	return &Screenings{Items: []*Screening{
		{File: "low.txt", Result: &Result{JobFitPercent: 12.5}},
		{File: "high.txt", Result: &Result{
			JobFitPercent:   87.5,
			MatchedSkills:   []string{"python", "docker"},
			ExtractedSkills: []skills.Match{
				{Skill: "python", MatchType: skills.MatchExact, Score: 100, Weight: 1.0},
				{Skill: "docker", MatchType: skills.MatchExact, Score: 100, Weight: 1.2},
				{Skill: "flask", MatchType: skills.MatchFuzzy, Score: 86, Weight: 1.0},
			},
		}, Profile: &profile.Profile{Name: "Jane Doe", Email: "jane@example.com"}},
		{File: "mid.txt", Result: &Result{JobFitPercent: 50.0}},
	}}
}

func TestSortByFit(t *testing.T) {
	t.Parallel()

	batch := sampleBatch()
	batch.SortByFit()

	order := []string{"high.txt", "mid.txt", "low.txt"}
	for i, file := range order {
		if batch.Items[i].File != file {
			t.Fatalf("expected %q at position %d, got %q", file, i, batch.Items[i].File)
		}
	}
}

func TestMinFit(t *testing.T) {
	t.Parallel()

	batch := sampleBatch()
	dropped := batch.MinFit(50.0)

	if len(dropped) != 1 || dropped[0] != "low.txt" {
		t.Fatalf("expected only low.txt to be dropped, got %v", dropped)
	}
	if batch.Len() != 2 {
		t.Fatalf("expected 2 screenings to remain, got %d", batch.Len())
	}
}

func TestMinFitKeepsAllBelowZeroThreshold(t *testing.T) {
	t.Parallel()

	batch := sampleBatch()
	if dropped := batch.MinFit(0); len(dropped) != 0 {
		t.Fatalf("expected nothing dropped, got %v", dropped)
	}
	if batch.Len() != 3 {
		t.Fatalf("expected all screenings kept, got %d", batch.Len())
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	report := sampleBatch().Report()

	entry, ok := report["high.txt"]
	if !ok {
		t.Fatalf("expected an entry for high.txt, got %v", report)
	}
	if entry["job_fit_percent"] != "87.50" {
		t.Fatalf("unexpected job fit: %q", entry["job_fit_percent"])
	}
	if entry["matched_skills"] != "python, docker" {
		t.Fatalf("unexpected matched skills: %q", entry["matched_skills"])
	}
	if entry["skills_found"] != "3" {
		t.Fatalf("unexpected skills count: %q", entry["skills_found"])
	}
	if entry["name"] != "Jane Doe" || entry["email"] != "jane@example.com" {
		t.Fatalf("expected profile fields in the report, got %v", entry)
	}

	if _, ok := report["low.txt"]["name"]; ok {
		t.Fatalf("expected no name without a profile")
	}
}

func TestDumpToTmpFile(t *testing.T) {
	batch := sampleBatch()

	name, err := batch.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded Screenings
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("dump is not valid json: %v", err)
	}
	if decoded.Len() != batch.Len() {
		t.Fatalf("expected %d screenings in the dump, got %d", batch.Len(), decoded.Len())
	}
}
