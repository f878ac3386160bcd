package gamification

import (
	"github.com/noah-isme/teachback-api/internal/models"
)

// Stats aggregates the user statistics the badge engine evaluates against.
type Stats struct {
	ExplanationsCount int
	AverageScore      int
	Streak            int
	Level             int
	UpvotesReceived   int
	SubjectsExplained int
}

// Criteria keys recognised by the rule engine. A badge's criteria map may
// carry additional keys (e.g. "subject"); unrecognised keys are ignored.
const (
	CriterionExplanations = "explanationsCount"
	CriterionAverageScore = "averageScore"
	CriterionStreak       = "streak"
	CriterionLevel        = "level"
	CriterionUpvotes      = "upvotesReceived"
	CriterionSubjects     = "subjectDiversity"
)

// EligibleBadges returns catalog badges the user now qualifies for and has
// not yet earned. A badge is satisfied when ANY single criteria field meets
// its threshold; this mirrors the historical behaviour and must not be
// tightened to require all fields.
func EligibleBadges(stats Stats, catalog []models.Badge, earned map[uint]bool) []models.Badge {
	eligible := make([]models.Badge, 0)
	for _, badge := range catalog {
		if earned[badge.ID] {
			continue
		}
		if criteriaSatisfied(stats, badge) {
			eligible = append(eligible, badge)
		}
	}
	return eligible
}

func criteriaSatisfied(stats Stats, badge models.Badge) bool {
	checks := []struct {
		key   string
		value int
	}{
		{CriterionExplanations, stats.ExplanationsCount},
		{CriterionAverageScore, stats.AverageScore},
		{CriterionStreak, stats.Streak},
		{CriterionLevel, stats.Level},
		{CriterionUpvotes, stats.UpvotesReceived},
		{CriterionSubjects, stats.SubjectsExplained},
	}

	for _, check := range checks {
		threshold, present := criterionThreshold(badge, check.key)
		if present && check.value >= threshold {
			return true
		}
	}
	return false
}

// criterionThreshold reads an integer threshold from the criteria JSON.
// JSON numbers decode as float64; seeded catalogs may also carry ints.
func criterionThreshold(badge models.Badge, key string) (int, bool) {
	raw, ok := badge.Criteria[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
