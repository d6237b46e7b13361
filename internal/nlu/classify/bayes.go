// Package classify holds both intent classifiers: a trained naive Bayes
// model and the deterministic pattern fallback.
package classify

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/kljensen/snowball"

	"nia-nlu/internal/common/errors"
	"nia-nlu/internal/nlu/intent"
	"nia-nlu/internal/nlu/language"
)

// Document is one labeled training utterance.
type Document struct {
	Text  string        `json:"text"`
	Label intent.Intent `json:"label"`
}

// Scored pairs an intent with its posterior probability.
type Scored struct {
	Intent     intent.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
}

// Classification is the statistical classifier's answer for one utterance.
type Classification struct {
	Intent       intent.Intent `json:"intent"`
	Confidence   float64       `json:"confidence"`
	Alternatives []Scored      `json:"alternatives,omitempty"`
	Tokens       []string      `json:"tokens,omitempty"`
}

// ModelInfo describes the currently published model.
type ModelInfo struct {
	Trained   bool      `json:"trained"`
	Documents int       `json:"documents"`
	Classes   int       `json:"classes"`
	TrainedAt time.Time `json:"trainedAt,omitempty"`
}

// model is one immutable trained snapshot. Readers always see a whole
// snapshot; Train publishes a fresh one with a single pointer swap.
type model struct {
	classes   []intent.Intent
	logPrior  map[intent.Intent]float64
	logLikely map[intent.Intent]map[string]float64
	logUnseen map[intent.Intent]float64
	docCount  int
	trainedAt time.Time
}

// Bayes is a multinomial naive Bayes classifier over stemmed tokens with
// Laplace smoothing.
type Bayes struct {
	current atomic.Pointer[model]
}

// NewBayes returns an untrained classifier. Classify fails until Train
// has published a model.
func NewBayes() *Bayes {
	return &Bayes{}
}

// Features stems the utterance's tokens. Tokens the stemmer cannot handle
// (Devanagari, numerics) pass through unchanged.
func Features(text string) []string {
	tokens := language.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		stemmed, err := snowball.Stem(tok, "english", true)
		if err != nil || stemmed == "" {
			out = append(out, tok)
			continue
		}
		out = append(out, stemmed)
	}
	return out
}

// Train builds a model from docs and atomically publishes it. The old
// model stays visible to concurrent readers until the swap. Training the
// same corpus twice publishes an equivalent model.
func (b *Bayes) Train(docs []Document) error {
	if len(docs) == 0 {
		return errors.NewCorpusTooSmallError("corpus has no documents")
	}

	tokenCounts := make(map[intent.Intent]map[string]int)
	totalTokens := make(map[intent.Intent]int)
	docCounts := make(map[intent.Intent]int)
	vocab := make(map[string]bool)

	for i, doc := range docs {
		if !intent.IsValid(string(doc.Label)) {
			return errors.NewCorpusInvalidError(fmt.Sprintf("document %d: unknown label %q", i, doc.Label))
		}
		feats := Features(doc.Text)
		if len(feats) == 0 {
			return errors.NewCorpusInvalidError(fmt.Sprintf("document %d: no usable tokens", i))
		}
		if tokenCounts[doc.Label] == nil {
			tokenCounts[doc.Label] = make(map[string]int)
		}
		docCounts[doc.Label]++
		for _, f := range feats {
			tokenCounts[doc.Label][f]++
			totalTokens[doc.Label]++
			vocab[f] = true
		}
	}

	if len(docCounts) < 2 {
		return errors.NewCorpusTooSmallError(fmt.Sprintf("corpus covers %d class(es), need at least 2", len(docCounts)))
	}

	m := &model{
		logPrior:  make(map[intent.Intent]float64, len(docCounts)),
		logLikely: make(map[intent.Intent]map[string]float64, len(docCounts)),
		logUnseen: make(map[intent.Intent]float64, len(docCounts)),
		docCount:  len(docs),
		trainedAt: time.Now().UTC(),
	}
	vocabSize := float64(len(vocab))

	for label, counts := range tokenCounts {
		m.classes = append(m.classes, label)
		m.logPrior[label] = math.Log(float64(docCounts[label]) / float64(len(docs)))
		denom := float64(totalTokens[label]) + vocabSize

		likely := make(map[string]float64, len(counts))
		for tok, n := range counts {
			likely[tok] = math.Log(float64(n+1) / denom)
		}
		m.logLikely[label] = likely
		m.logUnseen[label] = math.Log(1 / denom)
	}
	sort.Slice(m.classes, func(i, j int) bool { return m.classes[i] < m.classes[j] })

	b.current.Store(m)
	return nil
}

// Classify scores text against the published model. Confidence is a true
// posterior in [0,1], normalized across classes with log-sum-exp.
func (b *Bayes) Classify(text string) (Classification, error) {
	m := b.current.Load()
	if m == nil {
		return Classification{}, errors.NewClassifierNotTrainedError()
	}

	feats := Features(text)
	scores := make([]Scored, 0, len(m.classes))
	logScores := make([]float64, 0, len(m.classes))
	for _, label := range m.classes {
		s := m.logPrior[label]
		for _, f := range feats {
			if ll, ok := m.logLikely[label][f]; ok {
				s += ll
			} else {
				s += m.logUnseen[label]
			}
		}
		scores = append(scores, Scored{Intent: label})
		logScores = append(logScores, s)
	}

	// log-sum-exp normalization
	maxLog := logScores[0]
	for _, s := range logScores[1:] {
		if s > maxLog {
			maxLog = s
		}
	}
	var sum float64
	for _, s := range logScores {
		sum += math.Exp(s - maxLog)
	}
	for i := range scores {
		scores[i].Confidence = math.Exp(logScores[i]-maxLog) / sum
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Confidence > scores[j].Confidence })

	result := Classification{
		Intent:     scores[0].Intent,
		Confidence: scores[0].Confidence,
		Tokens:     feats,
	}
	for _, alt := range scores[1:] {
		if len(result.Alternatives) == 3 {
			break
		}
		result.Alternatives = append(result.Alternatives, alt)
	}
	return result, nil
}

// Info reports the state of the published model.
func (b *Bayes) Info() ModelInfo {
	m := b.current.Load()
	if m == nil {
		return ModelInfo{}
	}
	return ModelInfo{
		Trained:   true,
		Documents: m.docCount,
		Classes:   len(m.classes),
		TrainedAt: m.trainedAt,
	}
}
