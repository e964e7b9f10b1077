package repository

import (
	"fmt"
	"strings"
)

// BuildSummaryPrompt asks the model for one analyst-style paragraph over the headlines.
func BuildSummaryPrompt(ticker string, headlines []string) string {
	return fmt.Sprintf(`Act as a senior financial analyst. I will give you a list of recent news headlines for the stock ticker %s.
Read all of them, synthesize the information, and write a single, insightful paragraph summarizing the key narrative.
Do not just list the headlines. Create a fluid, well-written summary in your own words.

HEADLINES:
- %s
`, ticker, strings.Join(headlines, "\n- "))
}
