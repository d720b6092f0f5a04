package matching

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/job-radar/internal/types"
)

// Factor weights. The per-factor caps are deliberate product constants,
// not tunables; changing them invalidates every persisted score.
const (
	roleWeight            = 30
	overlapWeightCap      = 40
	overlapPerToken       = 4
	remoteBonus           = 8
	salaryWeight          = 12
	languageLevelWeight   = 8
	languageListedWeight  = 4
	locationExactWeight   = 10
	locationPartialWeight = 2
	seniorityBonus        = 6

	// maxReasons bounds the explanation list shown to users.
	maxReasons = 6
	// maxTokenGap bounds how many plain token differences join the
	// missing-skills list after the factor tags.
	maxTokenGap = 8
)

// Missing-skill tags appended when a weighted factor fails outright.
const (
	gapRoleAlignment     = "role_alignment"
	gapSkillsOverlap     = "skills_overlap"
	gapSalaryExpectation = "salary_expectation"
)

// languageLevelRe finds CEFR level tokens (A2..C2) in vacancy text.
var languageLevelRe = regexp.MustCompile(`(?i)\b(a2|b1|b2|c1|c2)\b`)

// Score computes the match between a candidate profile and a vacancy.
// It is deterministic and touches nothing outside its arguments; profile
// may be nil, in which case only vacancy-side factors contribute.
//
// Factors are evaluated unconditionally in a fixed order, each adding at
// most one reason: role alignment, skill overlap, remote bonus, salary
// fit, language signal, location match, seniority hint.
func Score(profile *types.Profile, vacancy types.Vacancy, locale string) types.ScoreResult {
	var (
		score         float64
		reasons       []string
		missingSkills []string
		matchedSkills []string
	)

	vacancyText := joinNonEmpty(vacancy.Title, vacancy.Description, vacancy.Location, vacancy.Company)
	vacancyTokens := TokenSet(vacancyText, locale)

	var profileRoles, profileSkills []string
	if profile != nil {
		profileRoles = lowerAll(profile.DesiredRoles)
		profileSkills = lowerAll(profile.Skills)
	}
	profileTokens := TokenSet(strings.Join(append(append([]string{}, profileRoles...), profileSkills...), " "), locale)

	// Role alignment: any desired title appearing inside the vacancy title.
	if len(profileRoles) > 0 {
		titleLower := strings.ToLower(vacancy.Title)
		aligned := false
		for _, role := range profileRoles {
			if strings.Contains(titleLower, role) {
				aligned = true
				break
			}
		}
		if aligned {
			score += roleWeight
			reasons = append(reasons, "Role alignment with desired titles")
		} else {
			missingSkills = append(missingSkills, gapRoleAlignment)
		}
	}

	// Skill overlap: shared tokens between vacancy and profile text.
	overlap := intersect(vacancyTokens, profileTokens)
	if len(overlap) > 0 {
		contribution := float64(len(overlap) * overlapPerToken)
		if contribution > overlapWeightCap {
			contribution = overlapWeightCap
		}
		score += contribution
		matchedSkills = append(matchedSkills, overlap...)
		reasons = append(reasons, "Skill overlap with your profile")
	} else {
		missingSkills = append(missingSkills, gapSkillsOverlap)
	}

	if vacancy.Remote {
		score += remoteBonus
		reasons = append(reasons, "Remote-friendly opportunity")
	}

	// Salary fit only applies when both bounds are stated.
	if profile != nil && profile.SalaryMin != nil && vacancy.SalaryMax != nil {
		if *vacancy.SalaryMax >= *profile.SalaryMin {
			score += salaryWeight
			reasons = append(reasons, "Salary aligns with your target")
		} else {
			missingSkills = append(missingSkills, gapSalaryExpectation)
		}
	}

	// Language signal: stronger when the vacancy names a CEFR level.
	if profile != nil && len(profile.Languages) > 0 {
		if languageLevelRe.MatchString(vacancyText) {
			score += languageLevelWeight
			reasons = append(reasons, "Language level requirements detected")
		} else {
			score += languageListedWeight
			reasons = append(reasons, "Languages listed in your profile")
		}
	}

	// Location match on normalized strings.
	var profileLocation string
	if profile != nil {
		profileLocation = normalizeLocation(profile.Location)
	}
	vacancyLocation := normalizeLocation(vacancy.Location)
	if profileLocation != "" && vacancyLocation != "" {
		if profileLocation == vacancyLocation {
			score += locationExactWeight
			reasons = append(reasons, "Same city as your location")
		} else {
			score += locationPartialWeight
			reasons = append(reasons, "Location is different but still relevant")
		}
	}

	// Seniority hint from the title, first matching level only.
	titleTokens := TokenSet(vacancy.Title, locale)
	for _, hint := range seniorityHints {
		if intersects(titleTokens, hint.Words) {
			score += seniorityBonus
			reasons = append(reasons, fmt.Sprintf("Seniority hint detected (%s)", hint.Level))
			break
		}
	}

	// Thin explanations get a generic closer; the fallback is appended
	// last so it can never displace a real reason.
	if len(reasons) < 3 {
		reasons = append(reasons, "Vacancy matches your profile keywords")
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	// Fill the missing-skills tail with the alphabetically first vacancy
	// tokens the profile lacks, keeping factor tags in front.
	gap := difference(vacancyTokens, profileTokens)
	if len(gap) > maxTokenGap {
		gap = gap[:maxTokenGap]
	}
	for _, token := range gap {
		if !contains(missingSkills, token) {
			missingSkills = append(missingSkills, token)
		}
	}

	sort.Strings(matchedSkills)

	return types.ScoreResult{
		Score:         score,
		Reasons:       reasons,
		MissingSkills: missingSkills,
		MatchedSkills: matchedSkills,
		VacancyTokens: sortedKeys(vacancyTokens),
	}
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}

func normalizeLocation(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// intersect returns the sorted members present in both sets.
func intersect(a, b map[string]bool) []string {
	var out []string
	for token := range a {
		if b[token] {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}

// difference returns the sorted members of a that are absent from b.
func difference(a, b map[string]bool) []string {
	var out []string
	for token := range a {
		if !b[token] {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}

func intersects(a, b map[string]bool) bool {
	for token := range a {
		if b[token] {
			return true
		}
	}
	return false
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for token := range set {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
