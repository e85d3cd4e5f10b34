package model

type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

type Quest struct {
	ID          string
	Title       string
	Description string
	Type        string
	Frequency   Frequency
	GroupID     string
	Threshold   int
}
