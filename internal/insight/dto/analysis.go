package dto

// SentimentResult is the normalized output of a classifier backend:
// a canonical lowercase label and a confidence score in [0,1].
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AspectSentiment is one aspect found in a single review with the sentiment
// of the sentence that mentions it. Label is in display form ("Positive").
type AspectSentiment struct {
	Aspect string  `json:"aspect"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
}

// AspectSummaryRow aggregates mentions of one aspect across a review
// collection. Label is the count-maximal category in display form; Score is
// the mean confidence over all mentions, rounded to 2 decimal places.
type AspectSummaryRow struct {
	Aspect   string  `json:"aspect"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Neutral  int     `json:"neutral"`
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
}

// TotalMentions returns the number of classified mentions of the aspect.
func (r AspectSummaryRow) TotalMentions() int {
	return r.Positive + r.Negative + r.Neutral
}

// TrendSeries is the day-bucketed sentiment time series for charting. The
// four slices are index-aligned; Dates is sorted ascending and holds one
// entry per calendar day present in the analyzed collection.
type TrendSeries struct {
	Dates    []string `json:"dates"`
	Positive []int    `json:"positive"`
	Negative []int    `json:"negative"`
	Neutral  []int    `json:"neutral"`
}

// PipelineStep is one stage of the text-processing pipeline shown on the
// review detail view.
type PipelineStep struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
