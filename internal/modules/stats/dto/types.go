package dto

// ChartData is the payload handed to the chart renderer: one label per
// subject and a single "Focused minutes" dataset aligned with the labels.
type ChartData struct {
	Labels   []string
	Datasets []Dataset
}

type Dataset struct {
	Label string
	Data  []int
}

type DayFocusOutput struct {
	DateKey        string
	FocusedMinutes int
	Sessions       int
}

type ReindexOutput struct {
	Indexed int
}
