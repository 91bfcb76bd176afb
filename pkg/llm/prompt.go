package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a news curator for an automated email digest.

Rules:
1. Report only real, significant events from roughly the last 24 hours
2. "good" items are genuinely positive: breakthroughs, recoveries, humanitarian wins
3. "shocking" items are startling or alarming: disasters, scandals, dramatic reversals
4. Titles are one short sentence; summaries are two to three sentences
5. Never repeat a story from the already-reported list

Output as JSON only, no other text:
{
  "news": [
    {
      "title": "short headline",
      "summary": "two to three sentence summary",
      "category": "good or shocking"
    }
  ]
}`

func buildUserPrompt(req GenerateRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Current date and time: %s.\n", req.Now.Format("Monday, 2 January 2006 15:04")))
	sb.WriteString(fmt.Sprintf("Give me the %d best good news stories and the %d most shocking news stories of the moment.\n", req.CountPerCategory, req.CountPerCategory))
	sb.WriteString(fmt.Sprintf("Write every title and summary in %s.\n", req.Language))

	if len(req.ExcludeTitles) > 0 {
		sb.WriteString(fmt.Sprintf("Already reported, do not repeat: %s", strings.Join(req.ExcludeTitles, ", ")))
	}

	return sb.String()
}
