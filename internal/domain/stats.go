package domain

// DashboardStats aggregates a user's learning history for the profile view
type DashboardStats struct {
	TotalEntries  int
	QuizzesTaken  int
	BestScore     int
	BestTotal     int
	MatchesPlayed int
	HighestCombo  int
	CurrentStreak int
}
