package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"chat-relay/internal/storage"
)

// DailyStats aggregates recorded interactions for one day.
type DailyStats struct {
	Date          string              `json:"date"`
	TotalMessages int                 `json:"total_messages"`
	UniqueUsers   int                 `json:"unique_users"`
	TotalTokens   int                 `json:"total_tokens"`
	UserStats     map[int64]UserStats `json:"user_stats"`
}

type UserStats struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Messages int    `json:"messages"`
	Tokens   int    `json:"tokens"`
}

// AnalyzeDailyLogs aggregates the events that fall on targetDate's day.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		UserStats: make(map[int64]UserStats),
	}

	uniqueUsers := make(map[int64]bool)

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		if event.UserMessage == "" {
			continue
		}

		stats.TotalMessages++
		stats.TotalTokens += event.TotalTokens
		uniqueUsers[event.UserID] = true

		userStat, exists := stats.UserStats[event.UserID]
		if !exists {
			userStat = UserStats{UserID: event.UserID, Username: event.Username}
		}
		userStat.Messages++
		userStat.Tokens += event.TotalTokens
		stats.UserStats[event.UserID] = userStat
	}

	stats.UniqueUsers = len(uniqueUsers)
	return stats
}

// FormatReport renders the stats as a short log-friendly report.
func FormatReport(stats *DailyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "daily report %s: %d messages, %d users, %d tokens",
		stats.Date, stats.TotalMessages, stats.UniqueUsers, stats.TotalTokens)

	ids := make([]int64, 0, len(stats.UserStats))
	for id := range stats.UserStats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		u := stats.UserStats[id]
		name := u.Username
		if name == "" {
			name = fmt.Sprintf("%d", u.UserID)
		}
		fmt.Fprintf(&b, "\n  %s: %d messages, %d tokens", name, u.Messages, u.Tokens)
	}
	return b.String()
}
