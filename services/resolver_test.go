package services

import (
	"testing"
	"time"

	"airdrop-service/feed"
)

var testLoc = time.FixedZone("UTC+8", 8*3600)

func intPtr(v int) *int {
	return &v
}

func TestResolveLeavesDateUnchangedWhenNotPhase2(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	cases := []*int{nil, intPtr(1), intPtr(3)}
	for _, phase := range cases {
		raw := feed.RawEvent{Token: "ABC", Phase: phase, Date: "2024-01-01", Time: "10:00", Status: "upcoming"}
		event := resolver.Resolve(raw, now)

		if event.Date != "2024-01-01" {
			t.Errorf("Expected date to stay '2024-01-01', got '%s'", event.Date)
		}
		if event.Time != "10:00" {
			t.Errorf("Expected time to stay '10:00', got '%s'", event.Time)
		}
	}
}

func TestResolvePhase2ShiftWithDayRollover(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	raw := feed.RawEvent{Token: "ABC", Phase: intPtr(2), Date: "2024-01-01", Time: "10:00"}
	event := resolver.Resolve(raw, now)

	if event.Date != "2024-01-02" {
		t.Errorf("Expected shifted date '2024-01-02', got '%s'", event.Date)
	}
	if event.Time != "04:00" {
		t.Errorf("Expected shifted time '04:00', got '%s'", event.Time)
	}
}

func TestResolvePhase2ShiftWithoutTime(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	raw := feed.RawEvent{Token: "ABC", Phase: intPtr(2), Date: "2024-01-01"}
	event := resolver.Resolve(raw, now)

	if event.Date != "2024-01-01" {
		t.Errorf("Expected date '2024-01-01', got '%s'", event.Date)
	}
	if event.Time != "18:00" {
		t.Errorf("Expected time '18:00' (midnight + 18h), got '%s'", event.Time)
	}
}

func TestResolvePhase2MalformedDateSkipsShift(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	raw := feed.RawEvent{Token: "ABC", Phase: intPtr(2), Date: "not-a-date", Time: "10:00", Status: "live"}
	event := resolver.Resolve(raw, now)

	if event.Date != "not-a-date" {
		t.Errorf("Expected date to stay 'not-a-date', got '%s'", event.Date)
	}
	if event.Time != "10:00" {
		t.Errorf("Expected time to stay '10:00', got '%s'", event.Time)
	}
	if event.Status != "live" {
		t.Errorf("Expected upstream status passthrough 'live', got '%s'", event.Status)
	}
}

func TestResolveStatusPastDate(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-14"}, now)
	if event.Status != StatusCompleted {
		t.Errorf("Expected past date to be completed, got '%s'", event.Status)
	}
}

func TestResolveStatusFutureDate(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-16"}, now)
	if event.Status != StatusAnnounced {
		t.Errorf("Expected future date to be announced, got '%s'", event.Status)
	}
}

func TestResolveStatusTodayWithoutTime(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 23, 59, 0, 0, testLoc)

	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-15"}, now)
	if event.Status != StatusAnnounced {
		t.Errorf("Expected today without time to be announced, got '%s'", event.Status)
	}
}

func TestResolveStatusTodayWithTime(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, testLoc)

	// 边界: 生效时刻恰好等于 now 时算 completed
	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-15", Time: "09:30"}, now)
	if event.Status != StatusCompleted {
		t.Errorf("Expected time == now to be completed, got '%s'", event.Status)
	}

	event = resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-15", Time: "09:31"}, now)
	if event.Status != StatusAnnounced {
		t.Errorf("Expected time after now to be announced, got '%s'", event.Status)
	}

	event = resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-15", Time: "09:29"}, now)
	if event.Status != StatusCompleted {
		t.Errorf("Expected time before now to be completed, got '%s'", event.Status)
	}
}

func TestResolveStatusInvalidTimeComponentsTreatedAsZero(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, testLoc)

	// 非法时间按 00:00 处理,今天的 00:00 已经过去
	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-15", Time: "xx:yy"}, now)
	if event.Status != StatusCompleted {
		t.Errorf("Expected invalid time to resolve as midnight (completed), got '%s'", event.Status)
	}
}

func TestResolveStatusMonotonicOverTime(t *testing.T) {
	resolver := NewResolver(testLoc)
	raw := feed.RawEvent{Token: "ABC", Date: "2024-03-15", Time: "12:00"}

	instants := []time.Time{
		time.Date(2024, 3, 14, 0, 0, 0, 0, testLoc),
		time.Date(2024, 3, 15, 11, 59, 0, 0, testLoc),
		time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc),
		time.Date(2024, 3, 15, 12, 1, 0, 0, testLoc),
		time.Date(2024, 3, 16, 0, 0, 0, 0, testLoc),
	}

	completedSeen := false
	for _, now := range instants {
		status := resolver.Resolve(raw, now).Status
		if completedSeen && status != StatusCompleted {
			t.Fatalf("Status went back to '%s' at %v after being completed", status, now)
		}
		if status == StatusCompleted {
			completedSeen = true
		}
	}
	if !completedSeen {
		t.Error("Expected the event to complete within the test window")
	}
}

func TestResolvePreservesOriginalStatus(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Date: "2024-03-14", Status: "confirmed"}, now)
	if event.OriginalStatus != "confirmed" {
		t.Errorf("Expected original_status 'confirmed', got '%s'", event.OriginalStatus)
	}
	if event.Status != StatusCompleted {
		t.Errorf("Expected computed status to override upstream, got '%s'", event.Status)
	}
}

func TestResolveMissingDatePassesThroughUpstreamStatus(t *testing.T) {
	resolver := NewResolver(testLoc)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, testLoc)

	event := resolver.Resolve(feed.RawEvent{Token: "ABC", Status: "tba"}, now)
	if event.Status != "tba" {
		t.Errorf("Expected upstream status passthrough 'tba', got '%s'", event.Status)
	}
	if event.OriginalStatus != "tba" {
		t.Errorf("Expected original_status 'tba', got '%s'", event.OriginalStatus)
	}
}
