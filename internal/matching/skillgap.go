package matching

import (
	"strings"

	"github.com/jonathan/job-radar/internal/types"
)

// maxSkillGapEntries bounds the learning plan shown on detail views.
const maxSkillGapEntries = 5

// learnBaseURL is the synthetic learning-resource location skills are
// slugged into.
const learnBaseURL = "https://example.com/learn/"

// BuildSkillGap maps the leading missing skills to learning-resource
// links. The skill order is the scorer's (factor tags first, then the
// alphabetical token tail); distinct skills always yield distinct links.
func BuildSkillGap(missingSkills []string) []types.SkillGapEntry {
	if len(missingSkills) > maxSkillGapEntries {
		missingSkills = missingSkills[:maxSkillGapEntries]
	}
	entries := make([]types.SkillGapEntry, 0, len(missingSkills))
	for _, skill := range missingSkills {
		entries = append(entries, types.SkillGapEntry{
			Skill: skill,
			Link:  learnBaseURL + strings.ReplaceAll(skill, " ", "-"),
		})
	}
	return entries
}
