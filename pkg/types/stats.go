package types

// RequestSummary is the aggregate behind the reports page and the xlsx export.
type RequestSummary struct {
	Total       int            `json:"total"`
	Overdue     int            `json:"overdue"`
	ByStage     map[string]int `json:"byStage"`
	ByType      map[string]int `json:"byType"`
	ByTeam      map[string]int `json:"byTeam"`
	ByPriority  map[string]int `json:"byPriority"`
	AvgDuration float64        `json:"avgDurationHours"`
}

func NewRequestSummary() RequestSummary {
	return RequestSummary{
		ByStage:    make(map[string]int),
		ByType:     make(map[string]int),
		ByTeam:     make(map[string]int),
		ByPriority: make(map[string]int),
	}
}
