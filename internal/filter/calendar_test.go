package filter_test

import (
	"reflect"
	"testing"
	"time"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
)

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2026, 7, 15, 18, 0, 0, 0, time.UTC)
	events := []domain.Event{
		{Id: "a", Date: day1},
		{Id: "b", Date: day1.Add(3 * time.Hour)},
		{Id: "c", Date: day1.Add(26 * time.Hour)},
	}

	buckets := filter.GroupByDay(events, time.UTC)
	if len(buckets) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Day != "2026-07-15" || buckets[0].Count != 2 {
		t.Errorf("Unexpected first bucket: %+v", buckets[0])
	}
	if buckets[1].Day != "2026-07-16" || !reflect.DeepEqual(ids(buckets[1].Events), []string{"c"}) {
		t.Errorf("Unexpected second bucket: %+v", buckets[1])
	}

	// 21:00 UTC on the 15th is already the 16th in Tokyo.
	tokyo := time.FixedZone("JST", 9*60*60)
	buckets = filter.GroupByDay(events, tokyo)
	if buckets[0].Day != "2026-07-16" {
		t.Errorf("Expected timezone-aware bucketing, got %s", buckets[0].Day)
	}
}
