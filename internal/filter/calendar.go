package filter

import (
	"time"

	"smorg/backend/internal/domain"
)

const dayLayout = "2006-01-02"

// DayBucket holds the events starting on one calendar day.
type DayBucket struct {
	Day    string         `json:"day"`
	Count  int            `json:"count"`
	Events []domain.Event `json:"events"`
}

// GroupByDay buckets events by their start day in tz. Events must already be
// sorted by date; bucket order and in-bucket order follow the input.
func GroupByDay(events []domain.Event, tz *time.Location) []DayBucket {
	if tz == nil {
		tz = time.UTC
	}
	var buckets []DayBucket
	index := make(map[string]int)
	for _, ev := range events {
		day := ev.Date.In(tz).Format(dayLayout)
		i, ok := index[day]
		if !ok {
			i = len(buckets)
			index[day] = i
			buckets = append(buckets, DayBucket{Day: day, Events: []domain.Event{}})
		}
		buckets[i].Events = append(buckets[i].Events, ev)
		buckets[i].Count++
	}
	return buckets
}
