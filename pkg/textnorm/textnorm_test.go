package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New()
	require.NoError(t, err)
	return n
}

func TestTokens_DropsPunctuationAndStopwords(t *testing.T) {
	n := newNormalizer(t)

	tokens := n.Tokens("The battery, honestly, is GREAT!!!")

	assert.Equal(t, []string{"battery", "honestly", "great"}, tokens)
}

func TestTokens_Lemmatizes(t *testing.T) {
	n := newNormalizer(t)

	tokens := n.Tokens("two cars and three dogs")

	assert.Equal(t, []string{"two", "car", "three", "dog"}, tokens)
}

func TestTokens_EmptyInput(t *testing.T) {
	n := newNormalizer(t)

	assert.Nil(t, n.Tokens(""))
	assert.Nil(t, n.Tokens("   \t \n "))
	assert.Nil(t, n.Tokens("!!! ... ???"))
}

func TestNormalize_DerivedForms(t *testing.T) {
	n := newNormalizer(t)

	res := n.Normalize("  The screen   is BLURRY. ")

	assert.Equal(t, "screen blurry", res.Cleaned)
	assert.Equal(t, "screen blurry", res.Tokenized)
	assert.Equal(t, "screen blurry", res.Processed)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newNormalizer(t)

	first := n.Normalize("Shipping was FAST, packaging was terrible!")
	second := n.Normalize(first.Processed)

	assert.Equal(t, first.Processed, second.Processed)
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := newNormalizer(t)

	res := n.Normalize("")

	assert.Empty(t, res.Cleaned)
	assert.Empty(t, res.Tokenized)
	assert.Empty(t, res.Processed)
}
