// Package gamification holds the pure progression rules: XP and level
// arithmetic, the daily streak transition, and the badge rule engine.
// Nothing here performs I/O; persistence is the caller's concern.
package gamification

import (
	"math"
	"time"
)

// XPPerLevel is the fixed XP band per level.
const XPPerLevel = 1000

// XPForScore converts an evaluation score into earned XP for a topic.
// A score of 0 is still an accepted submission, it just earns nothing.
func XPForScore(baseReward, score int) int {
	if baseReward <= 0 {
		return 0
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(float64(baseReward) * float64(score) / 100))
}

// LevelForXP derives the level from total XP. Level is never stored
// independently of XP, so it cannot drift.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// ApplyXP adds earned XP to a prior total and returns the new total and
// the level recomputed from it.
func ApplyXP(priorTotal, earned int) (newTotal, newLevel int) {
	if priorTotal < 0 {
		priorTotal = 0
	}
	newTotal = priorTotal + earned
	return newTotal, LevelForXP(newTotal)
}

// NextStreak computes the streak value after activity on today's date.
// Consecutive days extend the streak, a gap resets it to 1, first-ever
// activity starts at 1, and repeat activity on the same day leaves it
// unchanged.
func NextStreak(today time.Time, lastActive *time.Time, priorStreak int) int {
	if lastActive == nil {
		return 1
	}

	diff := daysBetween(*lastActive, today)
	switch {
	case diff == 1:
		return priorStreak + 1
	case diff > 1 || diff < 0:
		return 1
	default:
		if priorStreak < 1 {
			return 1
		}
		return priorStreak
	}
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(b.Sub(a).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
