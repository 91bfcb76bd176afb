package handler

type LogEntryResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Timestamp string `json:"timestamp"`
}

type NewsItemResponse struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

type DashboardResponse struct {
	Logs              []LogEntryResponse `json:"logs"`
	History           []NewsItemResponse `json:"history"`
	NextRun           *string            `json:"nextRun"`
	CurrentGeneration string             `json:"currentGeneration"`
}
