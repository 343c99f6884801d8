package dto

import "time"

type DayHours struct {
	Date  time.Time
	Hours float64
}

type ActivityItem struct {
	Timestamp time.Time
	Type      string
	Goal      string
	Intention string
}

type SummaryOutput struct {
	TodayHours    float64
	TodaySessions int
	AverageRating float64
	Ratings       int
	History       []DayHours
	Recent        []ActivityItem
}

type GoalTotal struct {
	Goal          string
	Sessions      int
	Hours         float64
	AverageRating float64
}

type ReindexOutput struct {
	Records int
	Spans   int
}
