package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCanonicalLabel(t *testing.T) {
	assert.True(t, IsCanonicalLabel(SentimentPositive))
	assert.True(t, IsCanonicalLabel(SentimentNegative))
	assert.True(t, IsCanonicalLabel(SentimentNeutral))

	assert.False(t, IsCanonicalLabel(""))
	assert.False(t, IsCanonicalLabel("Positive"))
	assert.False(t, IsCanonicalLabel("mixed"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Positive", Capitalize("positive"))
	assert.Equal(t, "Negative", Capitalize("Negative"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "9lives", Capitalize("9lives"))
}
