package domain

import (
	"time"
)

// StudyLoadPlan is the planner's recommendation for one study session.
// Never persisted — recomputed per request.
type StudyLoadPlan struct {
	NewCards             int
	ReviewCards          int
	EstimatedTimeMinutes float64
}

// TotalCards returns the total number of cards in the plan.
func (p StudyLoadPlan) TotalCards() int {
	return p.NewCards + p.ReviewCards
}

// DailyActivity holds aggregated review activity for one calendar day.
type DailyActivity struct {
	Date         time.Time
	ReviewCount  int
	TimeSpentSec int
}

// StudyStats holds aggregate statistics derived from a user's review history.
type StudyStats struct {
	TotalReviews       int
	AverageRating      float64
	TotalStudyTime     int // seconds
	AverageTimePerCard float64
	RetentionRate      int // percent, rounded
	Streak             int // consecutive calendar days ending today
	CardsPerDay        float64
	WeeklyProgress     []DailyActivity // trailing 7 days, oldest first
}

// CardStatusCounts holds the count of cards per lifecycle status.
type CardStatusCounts struct {
	New      int
	Learning int
	Review   int
	Mastered int
	Total    int
}

// Dashboard holds the headline study numbers for the user.
type Dashboard struct {
	DueCount      int
	NewCount      int
	ReviewedToday int
	NewToday      int
	Streak        int
	StatusCounts  CardStatusCounts
	OverdueCount  int
}

// DayReviewCount holds the review count for a specific date.
type DayReviewCount struct {
	Date  time.Time
	Count int
}

// CardReviewAggregation holds per-card review stats computed in SQL.
type CardReviewAggregation struct {
	TotalReviews  int
	AverageRating float64
	CorrectCount  int
	AvgTimeSec    *float64
}
