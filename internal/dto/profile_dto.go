package dto

// StatsResponse summarizes a user's activity across all explanations.
type StatsResponse struct {
	ExplanationsCount int64   `json:"explanations_count"`
	AverageScore      float64 `json:"average_score"`
	TotalXP           int     `json:"total_xp"`
	Level             int     `json:"level"`
	Streak            int     `json:"streak"`
	BadgesCount       int64   `json:"badges_count"`
	UpvotesReceived   int64   `json:"upvotes_received"`
	SubjectsExplained int64   `json:"subjects_explained"`
}

// ProfileResponse is the full profile view: the account, aggregate stats,
// latest badges and recent explanations.
type ProfileResponse struct {
	User           UserResponse          `json:"user"`
	Stats          StatsResponse         `json:"stats"`
	RecentBadges   []UserBadgeResponse   `json:"recent_badges"`
	RecentActivity []ExplanationResponse `json:"recent_activity"`
}
