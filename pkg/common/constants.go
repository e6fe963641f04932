package common

// Canonical sentiment labels. Stored lowercase; display forms are
// capitalized at the DTO layer.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Review sources.
const (
	ReviewSourceManual = "manual"
	ReviewSourceCSV    = "csv"
)

// System log event types.
const (
	EventProcessingTime = "processing_time"
	EventUploadFailed   = "upload_failed"
	EventDailyStats     = "daily_stats"
)

// RedisKeySentimentPrefix prefixes cached classification results, keyed by
// the SHA-256 of the classified text.
const RedisKeySentimentPrefix = "sentiment:"

// IsCanonicalLabel reports whether label is one of the three canonical
// sentiment labels.
func IsCanonicalLabel(label string) bool {
	switch label {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Capitalize upper-cases the first ASCII letter of s, matching the display
// form used in summaries and reports ("Positive", "Negative", "Neutral").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
