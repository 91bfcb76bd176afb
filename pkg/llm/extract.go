package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoNews wraps every extraction failure so callers can treat
// "nothing usable this cycle" as a single condition.
var ErrNoNews = errors.New("no usable news in response")

// ExtractNews pulls the news items out of a raw model response. Models
// wrap JSON in markdown fences or surrounding prose despite the system
// prompt, so the response is cleaned before parsing. Individual records
// are not validated: a record that fails to decode keeps its zero
// fields and only the top-level shape is checked.
func ExtractNews(raw string) ([]NewsItem, error) {
	content, err := cleanJSONResponse(raw)
	if err != nil {
		return nil, err
	}

	var payload struct {
		News []json.RawMessage `json:"news"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoNews, err)
	}
	if payload.News == nil {
		return nil, fmt.Errorf("%w: response has no news array", ErrNoNews)
	}

	items := make([]NewsItem, 0, len(payload.News))
	for _, record := range payload.News {
		var item NewsItem
		_ = json.Unmarshal(record, &item)
		items = append(items, item)
	}

	return items, nil
}

func cleanJSONResponse(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrNoNews)
	}
	return content[start : end+1], nil
}
