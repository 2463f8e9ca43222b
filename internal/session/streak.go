package session

// StreakMilestone is the spacing of celebrated streak lengths.
const StreakMilestone = 5

// IsMilestone reports whether streak is a positive multiple of
// StreakMilestone.
func IsMilestone(streak int) bool {
	return streak > 0 && streak%StreakMilestone == 0
}
