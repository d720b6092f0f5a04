package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScoreResult is the output of scoring one (profile, vacancy) pair.
// It is constructed once by the scorer and never mutated afterwards.
type ScoreResult struct {
	// Score is the additive factor total. Individual factors are capped
	// but the sum is not.
	Score float64 `json:"score"`
	// Reasons lists human-readable explanations, at most six, in the
	// order the factors produced them.
	Reasons []string `json:"reasons"`
	// MissingSkills starts with factor tags (role_alignment,
	// skills_overlap, salary_expectation) in discovery order, followed by
	// up to eight alphabetical vacancy tokens absent from the profile.
	MissingSkills []string `json:"missing_skills"`
	// MatchedSkills is the sorted token intersection of vacancy and
	// profile text.
	MatchedSkills []string `json:"matched_skills"`
	// VacancyTokens is the full sorted token set of the vacancy text,
	// used by the skill-gap planner and detail views.
	VacancyTokens []string `json:"vacancy_tokens"`
}

// Explanation joins the reasons into the single display string persisted
// with a match record.
func (r ScoreResult) Explanation() string {
	return strings.Join(r.Reasons, "; ")
}

// Match binds a score result to a vacancy for persistence. One profile has
// at most one current set of matches; replacing the previous set is the
// storing caller's job.
type Match struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	VacancyID     uuid.UUID `json:"vacancy_id"`
	Score         float64   `json:"score"`
	Explanation   string    `json:"explanation,omitempty"`
	MissingSkills []string  `json:"missing_skills,omitempty"`
	MatchedSkills []string  `json:"matched_skills,omitempty"`
	Reasons       []string  `json:"reasons,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SkillGapEntry maps one missing skill to a learning resource.
type SkillGapEntry struct {
	Skill string `json:"skill"`
	Link  string `json:"link"`
}
