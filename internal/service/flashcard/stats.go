package flashcard

import (
	"math"
	"time"

	"github.com/asvabprep/backend/internal/domain"
)

// qualifyingRating is the lowest rating that counts as a successful recall.
const qualifyingRating = 3

// GenerateStudyStats derives aggregate statistics from a user's review
// events. The input may arrive in any order; every aggregation is
// order-independent. An empty event list yields zero-valued stats, never an
// error. Pure function: now and loc pin down "today" for the calendar math.
func GenerateStudyStats(events []domain.ReviewEvent, now time.Time, loc *time.Location) domain.StudyStats {
	stats := domain.StudyStats{
		WeeklyProgress: weeklyProgress(events, now, loc),
	}
	if len(events) == 0 {
		return stats
	}

	var ratingSum, timeSum, qualifying int
	activeDays := make(map[string]bool)
	for _, ev := range events {
		ratingSum += ev.Rating
		timeSum += ev.TimeSpentSec
		if ev.Rating >= qualifyingRating {
			qualifying++
		}
		activeDays[dayKey(ev.ReviewedAt, loc)] = true
	}

	n := len(events)
	stats.TotalReviews = n
	stats.AverageRating = float64(ratingSum) / float64(n)
	stats.TotalStudyTime = timeSum
	stats.AverageTimePerCard = float64(timeSum) / float64(n)
	stats.RetentionRate = int(math.Round(100 * float64(qualifying) / float64(n)))
	stats.Streak = streakFromActiveDays(activeDays, now, loc)

	weekAgo := now.AddDate(0, 0, -7)
	recent := 0
	for _, ev := range events {
		if ev.ReviewedAt.After(weekAgo) && !ev.ReviewedAt.After(now) {
			recent++
		}
	}
	stats.CardsPerDay = float64(recent) / 7

	return stats
}

// streakFromActiveDays walks backward from today's calendar date, counting
// days until the first one with no review activity. A day counts once no
// matter how many events it holds; skipping a single day breaks the streak.
func streakFromActiveDays(activeDays map[string]bool, now time.Time, loc *time.Location) int {
	streak := 0
	cursor := now.In(loc)
	for activeDays[dayKey(cursor, loc)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// weeklyProgress aggregates the trailing 7 calendar days (today included),
// oldest first. Days without activity appear with zero counts.
func weeklyProgress(events []domain.ReviewEvent, now time.Time, loc *time.Location) []domain.DailyActivity {
	byDay := make(map[string]*domain.DailyActivity, 7)
	days := make([]domain.DailyActivity, 0, 7)

	userNow := now.In(loc)
	for i := 6; i >= 0; i-- {
		d := userNow.AddDate(0, 0, -i)
		date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		days = append(days, domain.DailyActivity{Date: date})
		byDay[dayKey(date, loc)] = &days[len(days)-1]
	}

	for _, ev := range events {
		if agg, ok := byDay[dayKey(ev.ReviewedAt, loc)]; ok {
			agg.ReviewCount++
			agg.TimeSpentSec += ev.TimeSpentSec
		}
	}

	return days
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
