package classify

// Activity level labels.
const (
	ActivityHigh   = "Highly active"
	ActivityActive = "Active"
	ActivityCasual = "Casual"
)

// ActivityLevel buckets the total interaction count. Boundaries are
// strict: exactly 200 is Active, exactly 50 is Casual.
func ActivityLevel(comments, posts int) string {
	total := comments + posts
	switch {
	case total > 200:
		return ActivityHigh
	case total > 50:
		return ActivityActive
	default:
		return ActivityCasual
	}
}
