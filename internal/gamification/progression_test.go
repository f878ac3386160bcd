package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestXPForScoreScalesWithScore(t *testing.T) {
	require.Equal(t, 80, XPForScore(80, 100))
	require.Equal(t, 40, XPForScore(80, 50))
	require.Equal(t, 0, XPForScore(80, 0))
	require.Equal(t, 38, XPForScore(75, 50), "rounds to nearest")
}

func TestXPForScoreStaysWithinBaseReward(t *testing.T) {
	for score := 0; score <= 100; score++ {
		earned := XPForScore(60, score)
		require.GreaterOrEqual(t, earned, 0)
		require.LessOrEqual(t, earned, 60)
	}
}

func TestXPForScoreClampsOutOfRangeInputs(t *testing.T) {
	require.Equal(t, 80, XPForScore(80, 150))
	require.Equal(t, 0, XPForScore(80, -10))
	require.Equal(t, 0, XPForScore(0, 90))
	require.Equal(t, 0, XPForScore(-5, 90))
}

func TestLevelForXPBands(t *testing.T) {
	require.Equal(t, 1, LevelForXP(0))
	require.Equal(t, 1, LevelForXP(999))
	require.Equal(t, 2, LevelForXP(1000))
	require.Equal(t, 3, LevelForXP(2500))
	require.Equal(t, 1, LevelForXP(-50), "negative totals behave like zero")
}

func TestLevelForXPIsIdempotentAndMonotone(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 5000; xp += 137 {
		level := LevelForXP(xp)
		require.Equal(t, level, LevelForXP(xp), "same XP must yield same level")
		require.GreaterOrEqual(t, level, prev)
		prev = level
	}
}

func TestApplyXPCrossesLevelBoundary(t *testing.T) {
	total, level := ApplyXP(950, 80)
	require.Equal(t, 1030, total)
	require.Equal(t, 2, level)
}

func TestApplyXPTreatsNegativePriorAsZero(t *testing.T) {
	total, level := ApplyXP(-20, 30)
	require.Equal(t, 30, total)
	require.Equal(t, 1, level)
}

func TestStreakConsecutiveDayIncrements(t *testing.T) {
	last := time.Date(2025, 3, 10, 22, 15, 0, 0, time.UTC)
	today := time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC)
	require.Equal(t, 5, NextStreak(today, &last, 4))
}

func TestStreakGapResets(t *testing.T) {
	last := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	today := last.AddDate(0, 0, 5)
	require.Equal(t, 1, NextStreak(today, &last, 9))
}

func TestStreakFirstActivityStartsAtOne(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	require.Equal(t, 1, NextStreak(today, nil, 0))
}

func TestStreakSameDayKeepsValue(t *testing.T) {
	last := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 21, 30, 0, 0, time.UTC)
	require.Equal(t, 3, NextStreak(today, &last, 3))
}

func TestStreakSameDayWithZeroPriorStartsAtOne(t *testing.T) {
	last := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	today := last.Add(2 * time.Hour)
	require.Equal(t, 1, NextStreak(today, &last, 0))
}

func TestStreakCrossesMidnightByCalendarDate(t *testing.T) {
	// 23:50 -> 00:10 next day is under an hour apart but still counts as
	// a consecutive day.
	last := time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)
	today := time.Date(2025, 3, 11, 0, 10, 0, 0, time.UTC)
	require.Equal(t, 2, NextStreak(today, &last, 1))
}
