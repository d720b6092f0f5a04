package matching

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-radar/internal/types"
)

func TestBuildMatchesRanksByScore(t *testing.T) {
	profile := &types.Profile{
		DesiredRoles: []string{"Engineer"},
		Skills:       []string{"go"},
	}
	weak := types.Vacancy{ID: uuid.New(), Title: "Accountant"}
	strong := types.Vacancy{ID: uuid.New(), Title: "Go Engineer", Remote: true}

	matches := BuildMatches(profile, []types.Vacancy{weak, strong}, LocaleEN)

	require.Len(t, matches, 2)
	assert.Equal(t, strong.ID, matches[0].VacancyID)
	assert.Equal(t, weak.ID, matches[1].VacancyID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestBuildMatchesStableForTies(t *testing.T) {
	// Identical remote-only vacancies all score the same; ranking must
	// keep them in collection order.
	vacancies := make([]types.Vacancy, 10)
	for i := range vacancies {
		vacancies[i] = types.Vacancy{
			ID:     uuid.New(),
			Title:  fmt.Sprintf("Position %d", i),
			Remote: true,
		}
	}

	matches := BuildMatches(nil, vacancies, LocaleEN)

	require.Len(t, matches, 10)
	for i, m := range matches {
		assert.Equal(t, vacancies[i].ID, m.VacancyID)
	}
}

func TestBuildMatchesTruncatesToTopFifty(t *testing.T) {
	vacancies := make([]types.Vacancy, 60)
	for i := range vacancies {
		vacancies[i] = types.Vacancy{ID: uuid.New(), Title: "Role", Remote: true}
	}

	assert.Len(t, BuildMatches(nil, vacancies, LocaleEN), MaxMatches)
	assert.Len(t, BuildAllMatches(nil, vacancies, LocaleEN), 60)
}

func TestBuildMatchesJoinsExplanation(t *testing.T) {
	vacancy := types.Vacancy{ID: uuid.New(), Title: "Senior Engineer", Remote: true}

	matches := BuildMatches(nil, []types.Vacancy{vacancy}, LocaleEN)

	require.Len(t, matches, 1)
	assert.Equal(t,
		"Remote-friendly opportunity; Seniority hint detected (senior); Vacancy matches your profile keywords",
		matches[0].Explanation)
	assert.Equal(t, matches[0].Reasons, []string{
		"Remote-friendly opportunity",
		"Seniority hint detected (senior)",
		"Vacancy matches your profile keywords",
	})
}

func TestBuildMatchesEmptyInput(t *testing.T) {
	assert.Empty(t, BuildMatches(nil, nil, LocaleEN))
}
