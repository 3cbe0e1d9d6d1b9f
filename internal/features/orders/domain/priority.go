package domain

// Priority classifies an order by amount for fulfillment ordering.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

var priorityLevels = map[Priority]int{
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

var priorityDescriptions = map[Priority]string{
	PriorityHigh:   "high",
	PriorityMedium: "medium",
	PriorityLow:    "low",
}

// Level returns the numeric rank; lower means higher priority.
func (p Priority) Level() int {
	return priorityLevels[p]
}

// Description returns the human-readable priority name.
func (p Priority) Description() string {
	return priorityDescriptions[p]
}

// IsHigherThan reports whether p outranks other.
func (p Priority) IsHigherThan(other Priority) bool {
	return p.Level() < other.Level()
}
