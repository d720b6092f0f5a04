// Package advice turns a match's missing skills into a learning plan.
// The deterministic part maps skills to resource links; the optional LLM
// part adds priorities and a study roadmap.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/job-radar/internal/llm"
	"github.com/jonathan/job-radar/internal/matching"
	"github.com/jonathan/job-radar/internal/prompts"
	"github.com/jonathan/job-radar/internal/types"
)

// PlanItem describes one missing skill with learning guidance.
type PlanItem struct {
	Skill        string `json:"skill"`
	Link         string `json:"link,omitempty"`
	Priority     string `json:"priority,omitempty"`
	LearningTime string `json:"learning_time,omitempty"`
	Suggestion   string `json:"suggestion,omitempty"`
}

// Plan is the full skill-gap output for one match.
type Plan struct {
	Score        float64    `json:"score"`
	Items        []PlanItem `json:"items"`
	LearningPlan string     `json:"learning_plan,omitempty"`
	Summary      string     `json:"summary,omitempty"`
}

// planSchema validates the LLM response before it is trusted.
const planSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["missing_skills", "learning_plan", "summary"],
  "properties": {
    "missing_skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["skill", "priority"],
        "properties": {
          "skill": {"type": "string", "minLength": 1},
          "priority": {"type": "string", "enum": ["critical", "high", "medium"]},
          "learning_time": {"type": "string"},
          "suggestion": {"type": "string"}
        }
      }
    },
    "learning_plan": {"type": "string"},
    "summary": {"type": "string"}
  }
}`

// Advisor builds skill-gap plans. A nil client produces link-only plans.
type Advisor struct {
	client llm.Client
}

// NewAdvisor creates an Advisor. client may be nil when no API key is
// configured.
func NewAdvisor(client llm.Client) *Advisor {
	return &Advisor{client: client}
}

// BuildPlan produces the learning plan for one scored vacancy. The link
// entries are always present; roadmap and priorities require the LLM and
// degrade to empty on any model or validation failure.
func (a *Advisor) BuildPlan(ctx context.Context, vacancy types.Vacancy, result types.ScoreResult) Plan {
	entries := matching.BuildSkillGap(result.MissingSkills)

	plan := Plan{Score: result.Score}
	for _, e := range entries {
		plan.Items = append(plan.Items, PlanItem{Skill: e.Skill, Link: e.Link})
	}

	if a == nil || a.client == nil || len(plan.Items) == 0 {
		return plan
	}

	enriched, err := a.enrich(ctx, vacancy, result, plan)
	if err != nil {
		// Links alone are still a useful answer.
		return plan
	}
	return enriched
}

type llmPlanResponse struct {
	MissingSkills []PlanItem `json:"missing_skills"`
	LearningPlan  string     `json:"learning_plan"`
	Summary       string     `json:"summary"`
}

func (a *Advisor) enrich(ctx context.Context, vacancy types.Vacancy, result types.ScoreResult, plan Plan) (Plan, error) {
	missing := make([]string, len(plan.Items))
	for i, item := range plan.Items {
		missing[i] = item.Skill
	}

	prompt := prompts.Format(prompts.MustGet("advice.json", "learning_plan"), map[string]string{
		"Title":       vacancy.Title,
		"Description": truncate(vacancy.Description, 3000),
		"Score":       fmt.Sprintf("%.1f", result.Score),
		"Matched":     strings.Join(result.MatchedSkills, ", "),
		"Missing":     strings.Join(missing, ", "),
	})

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to generate learning plan: %w", err)
	}

	if err := validatePlanJSON(raw); err != nil {
		return Plan{}, err
	}

	var resp llmPlanResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Plan{}, fmt.Errorf("failed to parse learning plan: %w", err)
	}

	// Keep the deterministic skill list and links; the model only adds
	// guidance for skills it recognized.
	bySkill := make(map[string]PlanItem, len(resp.MissingSkills))
	for _, item := range resp.MissingSkills {
		bySkill[strings.ToLower(strings.TrimSpace(item.Skill))] = item
	}
	for i, item := range plan.Items {
		if got, ok := bySkill[strings.ToLower(item.Skill)]; ok {
			plan.Items[i].Priority = got.Priority
			plan.Items[i].LearningTime = got.LearningTime
			plan.Items[i].Suggestion = got.Suggestion
		}
	}
	plan.LearningPlan = resp.LearningPlan
	plan.Summary = resp.Summary
	return plan, nil
}

func validatePlanJSON(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(planSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to validate learning plan: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("learning plan failed validation: %s", strings.Join(details, "; "))
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
