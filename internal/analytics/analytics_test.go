package analytics

import (
	"strings"
	"testing"
	"time"

	"chat-relay/internal/storage"
)

func TestAnalyzeDailyLogs(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	events := []storage.Event{
		{Timestamp: day.Add(2 * time.Hour), UserID: 1, Username: "alice", UserMessage: "q1", AssistantResponse: "a1", TotalTokens: 10},
		{Timestamp: day.Add(3 * time.Hour), UserID: 1, Username: "alice", UserMessage: "q2", AssistantResponse: "a2", TotalTokens: 15},
		{Timestamp: day.Add(4 * time.Hour), UserID: 2, Username: "bob", UserMessage: "q3", AssistantResponse: "a3", TotalTokens: 5},
		// previous day, must be excluded
		{Timestamp: day.Add(-1 * time.Hour), UserID: 3, Username: "carol", UserMessage: "old", AssistantResponse: "old"},
	}

	stats := AnalyzeDailyLogs(events, day.Add(12*time.Hour))

	if stats.Date != "2024-03-10" {
		t.Fatalf("unexpected date: %s", stats.Date)
	}
	if stats.TotalMessages != 3 {
		t.Fatalf("want 3 messages, got %d", stats.TotalMessages)
	}
	if stats.UniqueUsers != 2 {
		t.Fatalf("want 2 users, got %d", stats.UniqueUsers)
	}
	if stats.TotalTokens != 30 {
		t.Fatalf("want 30 tokens, got %d", stats.TotalTokens)
	}
	if stats.UserStats[1].Messages != 2 || stats.UserStats[1].Tokens != 25 {
		t.Fatalf("unexpected alice stats: %+v", stats.UserStats[1])
	}
}

func TestFormatReport(t *testing.T) {
	stats := &DailyStats{
		Date:          "2024-03-10",
		TotalMessages: 2,
		UniqueUsers:   1,
		TotalTokens:   20,
		UserStats: map[int64]UserStats{
			1: {UserID: 1, Username: "alice", Messages: 2, Tokens: 20},
		},
	}
	out := FormatReport(stats)
	if !strings.Contains(out, "2024-03-10") || !strings.Contains(out, "2 messages") {
		t.Fatalf("report missing summary: %q", out)
	}
	if !strings.Contains(out, "alice: 2 messages, 20 tokens") {
		t.Fatalf("report missing user line: %q", out)
	}
}
