package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeywords(t *testing.T) {
	t.Run("trims, lowercases and drops empties", func(t *testing.T) {
		got := NormalizeKeywords([]string{"  Polymorphism ", "OBJECTS", ""})
		assert.Equal(t, []string{"polymorphism", "objects"}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeKeywords([]string{"  Inheritance ", "Types"})
		twice := NormalizeKeywords(once)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeKeywords(nil))
		assert.Empty(t, NormalizeKeywords([]string{"", "  "}))
	})
}

func TestExtractKeywordsByFrequency(t *testing.T) {
	t.Run("ranks by frequency then first occurrence", func(t *testing.T) {
		text := "The cat sat on the mat. The cat chased the mat. Cat!"
		got := extractKeywordsByFrequency(text, 10)
		assert.Equal(t, []string{"cat", "mat", "sat", "chased"}, got)
	})

	t.Run("drops stop words and short tokens", func(t *testing.T) {
		got := extractKeywordsByFrequency("it is an ox and a database", 10)
		assert.Equal(t, []string{"database"}, got)
	})

	t.Run("caps at max", func(t *testing.T) {
		got := extractKeywordsByFrequency("alpha bravo charlie delta echo", 3)
		assert.Len(t, got, 3)
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, got)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, extractKeywordsByFrequency("", 10))
	})
}

func TestExtractKeywordsLinguistic(t *testing.T) {
	t.Run("keeps mid-sentence capitalized tokens as entities", func(t *testing.T) {
		got := extractKeywordsLinguistic("The engine runs on Postgres databases.", 10)
		assert.Contains(t, got, "postgres")
		assert.Contains(t, got, "engine")
		assert.Contains(t, got, "database")
	})

	t.Run("sentence-opening capitals are lemmatized, not entities", func(t *testing.T) {
		got := extractKeywordsLinguistic("Types matter. Types are checked.", 10)
		assert.Equal(t, []string{"type", "matter", "check"}, got)
	})

	t.Run("dedupes preserving first occurrence and caps at max", func(t *testing.T) {
		got := extractKeywordsLinguistic("objects objects types classes methods", 3)
		assert.Equal(t, []string{"object", "type", "class"}, got)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, extractKeywordsLinguistic("", 10))
	})
}

func TestExtractConcepts(t *testing.T) {
	t.Run("takes lemma of each chunk head", func(t *testing.T) {
		got := extractConcepts("Polymorphism allows objects of different types to be treated uniformly.")
		assert.Equal(t, []string{"object", "type", "uniformly"}, got)
	})

	t.Run("dedupes heads", func(t *testing.T) {
		got := extractConcepts("data types and simple types")
		assert.Equal(t, []string{"type"}, got)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, extractConcepts(""))
	})
}
