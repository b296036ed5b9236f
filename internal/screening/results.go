package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spigell/resume-screener/internal/profile"
)

// Screening pairs a screened resume file with its analysis outcome.
type Screening struct {
	File    string           `json:"file"`
	Profile *profile.Profile `json:"profile,omitempty"`
	Result  *Result          `json:"result"`
}

// Screenings is the outcome of a batch run.
type Screenings struct {
	Items []*Screening
}

func (s *Screenings) Len() int {
	return len(s.Items)
}

// SortByFit orders the batch by job-fit percentage, best first. The sort is
// stable so equally scored resumes keep their input order.
func (s *Screenings) SortByFit() {
	sort.SliceStable(s.Items, func(i, j int) bool {
		return s.Items[i].Result.JobFitPercent > s.Items[j].Result.JobFitPercent
	})
}

// MinFit drops screenings below the given job-fit percentage and returns the
// files that were removed.
func (s *Screenings) MinFit(threshold float64) []string {
	kept := make([]*Screening, 0, len(s.Items))
	dropped := make([]string, 0)

	for _, item := range s.Items {
		if item.Result.JobFitPercent < threshold {
			dropped = append(dropped, item.File)
			continue
		}
		kept = append(kept, item)
	}

	s.Items = kept
	return dropped
}

// DumpToTmpFile writes the batch as indented JSON to a temporary file and
// returns its name.
func (s *Screenings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "screenings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Report returns a per-file summary suitable for pretty printing.
func (s *Screenings) Report() map[string]map[string]string {
	report := make(map[string]map[string]string, len(s.Items))
	for _, item := range s.Items {
		entry := map[string]string{
			"job_fit_percent": fmt.Sprintf("%.2f", item.Result.JobFitPercent),
			"matched_skills":  strings.Join(item.Result.MatchedSkills, ", "),
			"skills_found":    fmt.Sprintf("%d", len(item.Result.ExtractedSkills)),
		}
		if item.Profile != nil {
			if item.Profile.Name != "" {
				entry["name"] = item.Profile.Name
			}
			if item.Profile.Email != "" {
				entry["email"] = item.Profile.Email
			}
		}
		report[item.File] = entry
	}
	return report
}
