package matching

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-radar/internal/types"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestScoreStrongMatch(t *testing.T) {
	profile := &types.Profile{
		DesiredRoles: []string{"Product Manager"},
		SalaryMin:    floatPtr(60000),
	}
	vacancy := types.Vacancy{
		Title:     "Senior Product Manager",
		Remote:    true,
		SalaryMax: floatPtr(90000),
	}

	result := Score(profile, vacancy, "en")

	// 30 role + 8 overlap + 8 remote + 12 salary + 6 seniority.
	assert.Equal(t, 64.0, result.Score)
	assert.Equal(t, []string{
		"Role alignment with desired titles",
		"Skill overlap with your profile",
		"Remote-friendly opportunity",
		"Salary aligns with your target",
		"Seniority hint detected (senior)",
	}, result.Reasons)
	assert.Equal(t, []string{"manag", "product"}, result.MatchedSkills)
	// The only vacancy token the profile lacks is the seniority marker.
	assert.Equal(t, []string{"senior"}, result.MissingSkills)
	assert.Equal(t, []string{"manag", "product", "senior"}, result.VacancyTokens)
}

func TestScoreNilProfile(t *testing.T) {
	vacancy := types.Vacancy{
		Title:       "Software Developer",
		Description: "Build services",
	}

	result := Score(nil, vacancy, "en")

	assert.Equal(t, 0.0, result.Score)
	// No profile factors fire; only the fallback reason remains.
	assert.Equal(t, []string{"Vacancy matches your profile keywords"}, result.Reasons)
	// The overlap tag is still recorded: an empty profile matches nothing.
	require.NotEmpty(t, result.MissingSkills)
	assert.Equal(t, "skills_overlap", result.MissingSkills[0])
	assert.NotContains(t, result.MissingSkills, "role_alignment")
	assert.Empty(t, result.MatchedSkills)
}

func TestScoreDeterminism(t *testing.T) {
	profile := &types.Profile{
		DesiredRoles: []string{"Engineer"},
		Skills:       []string{"Go", "Postgres", "Docker"},
		Languages:    map[string]string{"en": "C1", "de": "B2"},
		Location:     "Berlin",
		SalaryMin:    floatPtr(70000),
	}
	vacancy := types.Vacancy{
		Title:       "Senior Go Engineer",
		Description: "Go, Docker, Kubernetes. English B2 required.",
		Location:    "Berlin",
		Company:     "Acme",
		Remote:      true,
		SalaryMax:   floatPtr(95000),
	}

	first := Score(profile, vacancy, "en")
	second := Score(profile, vacancy, "en")
	assert.Equal(t, first, second)
}

func TestScoreOverlapCap(t *testing.T) {
	// Eleven shared skill tokens would contribute 44; the factor caps at 40.
	skills := make([]string, 11)
	for i := range skills {
		skills[i] = fmt.Sprintf("skillword%d", i)
	}
	profile := &types.Profile{Skills: skills}
	vacancy := types.Vacancy{
		Title:       "Role",
		Description: joinNonEmpty(skills...),
	}

	result := Score(profile, vacancy, "en")

	assert.Equal(t, 40.0, result.Score)
	assert.Len(t, result.MatchedSkills, 11)
	assert.True(t, sort.StringsAreSorted(result.MatchedSkills))
}

func TestScoreSalaryBelowTarget(t *testing.T) {
	profile := &types.Profile{SalaryMin: floatPtr(90000)}
	vacancy := types.Vacancy{Title: "Analyst", SalaryMax: floatPtr(50000)}

	result := Score(profile, vacancy, "en")

	assert.Contains(t, result.MissingSkills, "salary_expectation")
	assert.NotContains(t, result.Reasons, "Salary aligns with your target")
}

func TestScoreLanguageSignal(t *testing.T) {
	profile := &types.Profile{Languages: map[string]string{"de": "B1"}}

	withLevel := Score(profile, types.Vacancy{
		Title:       "Support",
		Description: "German B2 required",
	}, "en")
	assert.Contains(t, withLevel.Reasons, "Language level requirements detected")

	withoutLevel := Score(profile, types.Vacancy{
		Title:       "Support",
		Description: "German language helpful",
	}, "en")
	assert.Contains(t, withoutLevel.Reasons, "Languages listed in your profile")
	// The CEFR token must match whole words only: "b20" is not a level.
	noWordBoundary := Score(profile, types.Vacancy{
		Title:       "Support",
		Description: "room b20 onsite",
	}, "en")
	assert.Contains(t, noWordBoundary.Reasons, "Languages listed in your profile")
}

func TestScoreLocationFactor(t *testing.T) {
	tests := []struct {
		name            string
		profileLocation string
		vacancyLocation string
		expectedReason  string
	}{
		{
			name:            "Exact After Normalization",
			profileLocation: "  Berlin ",
			vacancyLocation: "berlin",
			expectedReason:  "Same city as your location",
		},
		{
			name:            "Different Cities",
			profileLocation: "Berlin",
			vacancyLocation: "Munich",
			expectedReason:  "Location is different but still relevant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &types.Profile{Location: tt.profileLocation}
			vacancy := types.Vacancy{Title: "Role", Location: tt.vacancyLocation}
			result := Score(profile, vacancy, "en")
			assert.Contains(t, result.Reasons, tt.expectedReason)
		})
	}

	t.Run("Skipped When Either Side Empty", func(t *testing.T) {
		profile := &types.Profile{Location: "Berlin"}
		result := Score(profile, types.Vacancy{Title: "Role"}, "en")
		assert.NotContains(t, result.Reasons, "Same city as your location")
		assert.NotContains(t, result.Reasons, "Location is different but still relevant")
	})
}

func TestScoreSeniorityPriority(t *testing.T) {
	// A title carrying both junior and senior markers reports junior:
	// levels are checked in junior, mid, senior order and the first
	// hit wins.
	result := Score(nil, types.Vacancy{Title: "Junior to Senior Developer"}, "en")
	assert.Contains(t, result.Reasons, "Seniority hint detected (junior)")
	assert.NotContains(t, result.Reasons, "Seniority hint detected (senior)")
}

func TestScoreBounds(t *testing.T) {
	profile := &types.Profile{
		DesiredRoles: []string{"Engineer"},
		Skills:       []string{"go"},
		Languages:    map[string]string{"en": "C2"},
		Location:     "Berlin",
		SalaryMin:    floatPtr(1),
	}
	vacancy := types.Vacancy{
		Title: "Senior Engineer",
		Description: "alpha beta gamma delta epsilon zeta eta theta iota kappa " +
			"lambda mu nu xi omicron pi rho sigma tau upsilon",
		Location:  "Hamburg",
		Company:   "Acme",
		Remote:    true,
		SalaryMax: floatPtr(2),
	}

	result := Score(profile, vacancy, "en")

	assert.LessOrEqual(t, len(result.Reasons), 6)
	// Token-difference tail is capped at eight beyond the factor tags.
	tags := 0
	for _, skill := range result.MissingSkills {
		if skill == "role_alignment" || skill == "skills_overlap" || skill == "salary_expectation" {
			tags++
		}
	}
	assert.LessOrEqual(t, len(result.MissingSkills)-tags, 8)
	assert.True(t, sort.StringsAreSorted(result.VacancyTokens))
}

func TestScoreMissingSkillsKeepFactorTagsFirst(t *testing.T) {
	profile := &types.Profile{
		DesiredRoles: []string{"Architect"},
		SalaryMin:    floatPtr(100000),
	}
	vacancy := types.Vacancy{
		Title:     "Backend Developer",
		SalaryMax: floatPtr(50000),
	}

	result := Score(profile, vacancy, "en")

	require.GreaterOrEqual(t, len(result.MissingSkills), 3)
	assert.Equal(t, "role_alignment", result.MissingSkills[0])
	assert.Equal(t, "skills_overlap", result.MissingSkills[1])
	assert.Equal(t, "salary_expectation", result.MissingSkills[2])
	tail := result.MissingSkills[3:]
	assert.True(t, sort.StringsAreSorted(tail))
}
