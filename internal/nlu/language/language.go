// Package language provides script-based language tagging, tokenization
// and lexicon sentiment scoring for user utterances.
package language

import (
	"strings"
	"unicode"
)

// Tag is a detected language tag from the closed set the assistant
// supports.
type Tag string

const (
	TagEnglish Tag = "en-IN"
	TagHindi   Tag = "hi"
	TagMixed   Tag = "hi-en"
)

// Detection carries the detected tag and how sure the detector is.
type Detection struct {
	Language   Tag     `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Detect tags text by script membership. Mixed Devanagari and Latin text
// is tagged hi-en; a single script gets its tag at higher confidence.
// Text with neither script degrades to the English default at 0.6.
func Detect(text string) Detection {
	var hasLatin, hasDevanagari bool
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			hasDevanagari = true
		case unicode.IsLetter(r) && r < 0x024F:
			hasLatin = true
		}
		if hasLatin && hasDevanagari {
			break
		}
	}

	switch {
	case hasDevanagari && hasLatin:
		return Detection{Language: TagMixed, Confidence: 0.8}
	case hasDevanagari:
		return Detection{Language: TagHindi, Confidence: 0.9}
	case hasLatin:
		return Detection{Language: TagEnglish, Confidence: 0.9}
	default:
		return Detection{Language: TagEnglish, Confidence: 0.6}
	}
}

// Tokenize lower-cases text and splits it into runs of letters and
// digits. Punctuation is discarded.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Sentiment is the lexicon score of an utterance.
type Sentiment struct {
	Score       float64 `json:"score"`
	Comparative float64 `json:"comparative"`
	Label       string  `json:"label"`
}

// AnalyzeSentiment sums token valences from the built-in lexicon and
// normalizes by token count. Labels flip at +/-0.1; empty input is
// neutral.
func AnalyzeSentiment(text string) Sentiment {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return Sentiment{Label: "neutral"}
	}

	var sum float64
	for _, tok := range tokens {
		sum += valence[tok]
	}

	score := sum / float64(len(tokens))
	s := Sentiment{
		Score:       score,
		Comparative: score / float64(len(tokens)),
		Label:       "neutral",
	}
	switch {
	case score > 0.1:
		s.Label = "positive"
	case score < -0.1:
		s.Label = "negative"
	}
	return s
}
