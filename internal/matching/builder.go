package matching

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-radar/internal/types"
)

// MaxMatches caps how many ranked matches are kept for persistence.
// This is a volume control, not a scoring decision; BuildAllMatches
// bypasses it.
const MaxMatches = 50

// BuildMatches scores every vacancy against the profile, ranks by score
// descending and truncates to MaxMatches. Ordering among equal scores is
// the original collection order.
func BuildMatches(profile *types.Profile, vacancies []types.Vacancy, locale string) []types.Match {
	matches := BuildAllMatches(profile, vacancies, locale)
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}

// BuildAllMatches is BuildMatches without the top-N truncation.
func BuildAllMatches(profile *types.Profile, vacancies []types.Vacancy, locale string) []types.Match {
	matches := scoreAll(profile, vacancies, locale)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// scoreAll runs the scorer over the vacancy set. Scoring is pure, so the
// map step fans out across goroutines; each result lands at its input
// index, preserving collection order for the stable sort that follows.
func scoreAll(profile *types.Profile, vacancies []types.Vacancy, locale string) []types.Match {
	matches := make([]types.Match, len(vacancies))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range vacancies {
		g.Go(func() error {
			result := Score(profile, vacancies[i], locale)
			matches[i] = types.Match{
				VacancyID:     vacancies[i].ID,
				Score:         result.Score,
				Explanation:   result.Explanation(),
				MissingSkills: result.MissingSkills,
				MatchedSkills: result.MatchedSkills,
				Reasons:       result.Reasons,
			}
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
	return matches
}
