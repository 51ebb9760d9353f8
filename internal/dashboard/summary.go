// Package dashboard reduces a user's sessions into dashboard figures.
package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
)

// Partition splits sessions by start time. A session starting exactly at now
// counts as upcoming.
func Partition(sessions []models.Session, now time.Time) (upcoming, past []models.Session) {
	upcoming = []models.Session{}
	past = []models.Session{}
	for _, s := range sessions {
		if s.DateTime.Before(now) {
			past = append(past, s)
			continue
		}
		upcoming = append(upcoming, s)
	}
	return upcoming, past
}

// MenteeSummary is the mentee dashboard header.
type MenteeSummary struct {
	UpcomingCount int     `json:"upcoming_count"`
	PastCount     int     `json:"past_count"`
	HoursSpent    float64 `json:"hours_spent"`
	TotalSpent    float64 `json:"total_spent"`
}

// MentorSummary is the mentor dashboard header.
type MentorSummary struct {
	UpcomingCount int     `json:"upcoming_count"`
	PastCount     int     `json:"past_count"`
	HoursMentored float64 `json:"hours_mentored"`
	TotalEarned   float64 `json:"total_earned"`
	MenteeCount   int     `json:"mentee_count"`
}

// SummarizeMentee totals hours and spend over past sessions.
func SummarizeMentee(upcoming, past []models.Session) MenteeSummary {
	hours, total := pastTotals(past)
	return MenteeSummary{
		UpcomingCount: len(upcoming),
		PastCount:     len(past),
		HoursSpent:    hours,
		TotalSpent:    total,
	}
}

// SummarizeMentor totals hours and earnings over past sessions and counts
// distinct mentees across both lists.
func SummarizeMentor(upcoming, past []models.Session) MentorSummary {
	hours, total := pastTotals(past)
	mentees := make(map[uuid.UUID]struct{}, len(upcoming)+len(past))
	for _, s := range upcoming {
		mentees[s.MenteeID] = struct{}{}
	}
	for _, s := range past {
		mentees[s.MenteeID] = struct{}{}
	}
	return MentorSummary{
		UpcomingCount: len(upcoming),
		PastCount:     len(past),
		HoursMentored: hours,
		TotalEarned:   total,
		MenteeCount:   len(mentees),
	}
}

func pastTotals(past []models.Session) (hours, total float64) {
	minutes := 0
	for _, s := range past {
		minutes += s.Duration
		total += s.Price
	}
	return float64(minutes) / 60, total
}
