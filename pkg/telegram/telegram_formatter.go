package telegram

import (
	"fmt"
	"strings"
	"time"

	"stock-sentiment-tracker/internal/sentiment/dto"
)

const maxMessageLen = 4090

// FormatRunReport formats a collector run report into one or more Markdown
// messages for Telegram, splitting so that no message exceeds the limit.
func FormatRunReport(report dto.RunReport) []string {
	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📰 *Daily Sentiment Run %s* 📰\n", report.RecordDate))
			current.WriteString(fmt.Sprintf("✅ Stored: %d | ⏭ Empty: %d | ❌ Failed: %d | ⏳ Pending: %d\n",
				report.Count(dto.TargetStateStored),
				report.Count(dto.TargetStateSkippedEmpty),
				report.Count(dto.TargetStateSkippedFailed),
				report.Count(dto.TargetStatePending)))
			if report.RateLimited {
				current.WriteString("⚠️ News source rate limit reached, run stopped early\n")
			}
			current.WriteString(fmt.Sprintf("⏱ Duration: %s\n\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Second)))
		} else {
			current.WriteString(fmt.Sprintf("---*Daily Sentiment Run Part %d*---\n\n", part))
		}
	}

	startNewPart()

	for _, o := range report.Outcomes {
		if o.State == dto.TargetStatePending {
			continue
		}
		entry := formatOutcome(o)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}

	messages = append(messages, current.String())
	return messages
}

func formatOutcome(o dto.TargetOutcome) string {
	switch o.State {
	case dto.TargetStateStored:
		icon := "😐"
		switch {
		case o.SentimentScore > 0.1:
			icon = "😊"
		case o.SentimentScore < -0.1:
			icon = "😟"
		}
		return fmt.Sprintf("%s `%s` %.3f (%d articles, +%d / -%d)\n",
			icon, o.Ticker, o.SentimentScore, o.ArticleCount, o.PositiveCount, o.NegativeCount)
	case dto.TargetStateSkippedEmpty:
		return fmt.Sprintf("⏭ `%s` no articles\n", o.Ticker)
	default:
		return fmt.Sprintf("❌ `%s` %s\n", o.Ticker, o.Error)
	}
}

// FormatErrorAlertMessage formats an unexpected failure for Telegram.
func FormatErrorAlertMessage(at time.Time, errType string, errMsg string) string {
	return fmt.Sprintf("📛 [ERROR ALERT]\n%s\n🔧 %s\n⚠️ %s\n", at.Format("2006-01-02 15:04:05 MST"), errType, errMsg)
}
