package model

type Category string

const (
	CategoryGood     Category = "good"
	CategoryShocking Category = "shocking"
)

// NewsItem is one generated story. Items are persisted verbatim in the
// digest history file, so the JSON tags are the storage format.
type NewsItem struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Category Category `json:"category"`
}
