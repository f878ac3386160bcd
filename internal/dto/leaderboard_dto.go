package dto

import "github.com/noah-isme/teachback-api/internal/models"

// LeaderboardEntry is one ranked row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TotalXP   int    `json:"total_xp"`
	Level     int    `json:"level"`
	Streak    int    `json:"streak"`
}

// NewLeaderboardEntries converts ranked users into leaderboard rows. Rank is
// positional, starting at 1.
func NewLeaderboardEntries(users []models.User) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:      i + 1,
			UserID:    user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			TotalXP:   user.TotalXP,
			Level:     user.Level,
			Streak:    user.Streak,
		})
	}
	return entries
}
