package screening

import (
	"context"
	"math"
	"strings"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/skills"
	"go.uber.org/zap"
)

// Blend weights for the final job-fit score.
const (
	weightSkills    = 0.5
	weightTfidf     = 0.25
	weightEmbedding = 0.25

	// Divisor for the fallback heuristic used when no job description is
	// supplied: ten extracted skills count as a full skill-match score.
	fallbackSkillCap = 10
)

// TextScorer produces a similarity score in [0,1] for a pair of texts.
type TextScorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Result is the outcome of screening a single resume against a job description.
type Result struct {
	JobFitPercent   float64        `json:"job_fit_percent"`
	SkillMatchScore float64        `json:"skill_match_score"`
	TfidfScore      float64        `json:"tfidf_score"`
	EmbeddingScore  float64        `json:"bert_score"`
	ExtractedSkills []skills.Match `json:"extracted_skills"`
	MatchedSkills   []string       `json:"matched_skills"`
	JobSkills       []string       `json:"jd_skills"`
}

// Analyzer scores resumes against a job description. Scorers are optional: a
// nil or failing scorer contributes 0 to the blend and never aborts the
// analysis. Build the Analyzer once and reuse it; it holds the expensive
// embedding handle and is safe for concurrent use.
type Analyzer struct {
	Dictionary skills.Dictionary
	Tfidf      TextScorer
	Embedding  TextScorer
	Logger     *zap.Logger
}

// Analyze extracts skills from both texts, computes the three signals and
// blends them into a job-fit percentage. It always returns a Result.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string) *Result {
	if a.Logger != nil {
		a.Logger.Debug("analyzing resume",
			zap.String("resume", logger.TruncateForLog(resumeText, 120)),
			zap.String("job", logger.TruncateForLog(jobText, 120)),
		)
	}

	extracted := skills.Extract(resumeText, a.Dictionary)

	jobSet := make(map[string]struct{})
	jobSkills := make([]string, 0)
	hasJob := strings.TrimSpace(jobText) != ""
	if hasJob {
		for _, m := range skills.Extract(jobText, a.Dictionary) {
			jobSet[m.Skill] = struct{}{}
			jobSkills = append(jobSkills, m.Skill)
		}
	}

	matched := make([]string, 0, len(extracted))
	for _, m := range extracted {
		if _, ok := jobSet[m.Skill]; ok {
			matched = append(matched, m.Skill)
		}
	}

	var skillScore float64
	if len(jobSet) > 0 {
		skillScore = float64(len(matched)) / float64(len(jobSet))
	} else {
		skillScore = math.Min(float64(len(extracted))/fallbackSkillCap, 1.0)
	}

	var tfidfScore, embeddingScore float64
	if hasJob {
		tfidfScore = a.score(ctx, "tfidf", a.Tfidf, resumeText, jobText)
		embeddingScore = a.score(ctx, "embedding", a.Embedding, resumeText, jobText)
	}

	fit := weightSkills*skillScore + weightTfidf*tfidfScore + weightEmbedding*embeddingScore

	return &Result{
		JobFitPercent:   round(fit*100, 2),
		SkillMatchScore: round(skillScore, 3),
		TfidfScore:      round(tfidfScore, 3),
		EmbeddingScore:  round(embeddingScore, 3),
		ExtractedSkills: extracted,
		MatchedSkills:   matched,
		JobSkills:       jobSkills,
	}
}

// score absorbs scorer failures: a broken similarity provider contributes a
// zero score instead of aborting the screening.
func (a *Analyzer) score(ctx context.Context, name string, scorer TextScorer, resumeText, jobText string) float64 {
	if scorer == nil {
		return 0
	}

	s, err := scorer.Score(ctx, resumeText, jobText)
	if err != nil {
		if a.Logger != nil {
			a.Logger.Warn("similarity scoring failed",
				zap.String("scorer", name),
				zap.Error(err),
			)
		}
		return 0
	}

	return s
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
