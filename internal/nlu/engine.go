package nlu

import (
	"context"
	"fmt"
	"time"

	"nia-nlu/internal/common/errors"
	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/common/metrics"
	"nia-nlu/internal/nlu/classify"
	"nia-nlu/internal/nlu/entity"
	"nia-nlu/internal/nlu/extract"
	"nia-nlu/internal/nlu/intent"
	"nia-nlu/internal/nlu/language"
	"nia-nlu/internal/nlu/validate"
)

// DefaultFallbackThreshold is the statistical confidence below which the
// pattern fallback is also consulted.
const DefaultFallbackThreshold = 0.7

// Options configures an Engine.
type Options struct {
	Logger            logger.Logger
	FallbackThreshold float64
	Clock             func() time.Time
	SkipSeedTraining  bool
}

// Engine runs the full pipeline. It is safe for concurrent use; retraining
// swaps the classifier model atomically underneath running classifications.
type Engine struct {
	log       logger.Logger
	bayes     *classify.Bayes
	fallback  *classify.Fallback
	extractor *extract.Extractor
	validator *validate.Validator
	threshold float64
}

// NewEngine builds and, unless told otherwise, seeds the engine with the
// built-in corpus.
func NewEngine(opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	threshold := opts.FallbackThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFallbackThreshold
	}

	var extractOpts []extract.Option
	var validateOpts []validate.Option
	if opts.Clock != nil {
		extractOpts = append(extractOpts, extract.WithClock(opts.Clock))
		validateOpts = append(validateOpts, validate.WithClock(opts.Clock))
	}

	e := &Engine{
		log:       log,
		bayes:     classify.NewBayes(),
		fallback:  classify.NewFallback(opts.Clock),
		extractor: extract.New(log, extractOpts...),
		validator: validate.New(log, validateOpts...),
		threshold: threshold,
	}

	if !opts.SkipSeedTraining {
		if err := e.bayes.Train(classify.BuiltinCorpus()); err != nil {
			return nil, err
		}
		info := e.bayes.Info()
		log.Info("intent model trained", map[string]interface{}{
			"documents": info.Documents,
			"classes":   info.Classes,
		})
	}
	return e, nil
}

// Classify runs the pipeline over text. It never returns an error and
// never panics: a broken or missing statistical model degrades to the
// pattern fallback, and the worst case is a low-confidence
// general_inquiry.
func (e *Engine) Classify(ctx context.Context, text string) *IntentResult {
	started := time.Now()

	detection := language.Detect(text)
	sentiment := language.AnalyzeSentiment(text)
	extraction := e.extractor.Extract(text)

	cls, statOK := e.classifyStatistical(text)

	adopted := intent.GeneralInquiry
	intentConf := classify.FallbackNoMatchConfidence
	bag := extraction.Entities
	fallbackUsed := false
	var alternatives []classify.Scored

	if statOK {
		adopted = cls.Intent
		intentConf = cls.Confidence
		alternatives = cls.Alternatives
	}

	if !statOK || cls.Confidence < e.threshold {
		fb := e.fallback.Detect(text)
		fallbackUsed = true
		metrics.FallbackUsed.WithLabelValues(adoptionSource(statOK, cls, fb)).Inc()

		if !statOK || fb.Confidence >= cls.Confidence {
			adopted = fb.Intent
			intentConf = fb.Confidence
			if !fb.Entities.IsEmpty() {
				bag = fb.Entities
			}
		}
	}

	report := e.validator.Validate(adopted, bag)

	confidence := intentConf
	if report.OverallConfidence < confidence {
		confidence = report.OverallConfidence
	}
	if confidence < 0.5 {
		metrics.LowConfidenceResults.Inc()
	}

	result := &IntentResult{
		Intent:       adopted,
		Confidence:   confidence,
		Entities:     bag.Map(),
		Language:     detection,
		Sentiment:    sentiment,
		Validation:   report,
		Actions:      deriveActions(adopted, bag, report),
		FallbackUsed: fallbackUsed,
		Alternatives: alternatives,
		ProcessedAt:  time.Now().UTC(),
		DurationMs:   time.Since(started).Milliseconds(),
	}

	metrics.UtterancesProcessed.WithLabelValues(string(adopted)).Inc()
	metrics.ClassifyDuration.WithLabelValues(string(adopted)).Observe(time.Since(started).Seconds())

	e.log.Info("utterance classified", map[string]interface{}{
		"intent":       string(adopted),
		"confidence":   confidence,
		"language":     string(detection.Language),
		"fallbackUsed": fallbackUsed,
		"entityKinds":  bag.Len(),
		"durationMs":   result.DurationMs,
	})
	return result
}

// classifyStatistical shields the pipeline from the statistical path: any
// error or panic there abandons the path entirely.
func (e *Engine) classifyStatistical(text string) (cls classify.Classification, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.NewIntentParsingFailedError(fmt.Errorf("classifier panic: %v", r))
			e.log.WithError(err).Error("statistical classifier panicked", nil)
			ok = false
		}
	}()

	cls, err := e.bayes.Classify(text)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeClassifierNotTrained) {
			e.log.Debug("no trained model, pattern fallback only", nil)
		} else {
			e.log.WithError(err).Warn("statistical classification unavailable", nil)
		}
		return classify.Classification{}, false
	}
	return cls, true
}

// Retrain replaces the published model. Readers racing a retrain see the
// old model or the new one, never a partial state.
func (e *Engine) Retrain(docs []classify.Document) error {
	if err := e.bayes.Train(docs); err != nil {
		metrics.RetrainsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RetrainsTotal.WithLabelValues("success").Inc()
	info := e.bayes.Info()
	e.log.Info("intent model retrained", map[string]interface{}{
		"documents": info.Documents,
		"classes":   info.Classes,
	})
	return nil
}

// ModelInfo exposes the published model's state.
func (e *Engine) ModelInfo() classify.ModelInfo {
	return e.bayes.Info()
}

func adoptionSource(statOK bool, cls classify.Classification, fb classify.FallbackResult) string {
	if statOK && cls.Confidence > fb.Confidence {
		return "statistical"
	}
	return "pattern"
}

// deriveActions maps the adopted intent and entities to the downstream
// operations, ordered by priority. Intents outside the four actionable
// ones produce no actions.
func deriveActions(it intent.Intent, bag *entity.Bag, report *validate.Report) []Action {
	var actions []Action

	normalized := func(kind entity.Kind) string {
		if fr, ok := report.Fields[kind]; ok && fr.Normalized != "" {
			return fr.Normalized
		}
		return bag.Primary(kind)
	}

	switch it {
	case intent.CreateLead:
		actions = append(actions, Action{
			Type:       ActionValidateLeadData,
			Parameters: map[string]interface{}{"leadData": bag.Map()},
			Priority:   1,
		})
		if bag.Has(entity.KindName) && bag.Has(entity.KindCompany) {
			params := map[string]interface{}{
				"name":    normalized(entity.KindName),
				"company": normalized(entity.KindCompany),
			}
			if bag.Has(entity.KindEmail) {
				params["email"] = normalized(entity.KindEmail)
			}
			if bag.Has(entity.KindPhone) {
				params["phone"] = normalized(entity.KindPhone)
			}
			actions = append(actions, Action{Type: ActionCreateCRMLead, Parameters: params, Priority: 2})
		}

	case intent.ScheduleMeeting:
		availParams := map[string]interface{}{}
		if span, ok := bag.PrimaryDate(); ok {
			availParams["date"] = span.Start.Format(time.RFC3339)
		}
		if bag.Has(entity.KindTime) {
			availParams["time"] = normalized(entity.KindTime)
		}
		actions = append(actions,
			Action{Type: ActionCheckCalendarAvailability, Parameters: availParams, Priority: 1},
			Action{Type: ActionCreateCalendarEvent, Parameters: eventParams(bag, report, normalized), Priority: 2},
		)

	case intent.CreateTask:
		params := map[string]interface{}{
			"description": normalized(entity.KindDescription),
		}
		if bag.Has(entity.KindDueDate) {
			params["dueDate"] = normalized(entity.KindDueDate)
		}
		if bag.Has(entity.KindPriority) {
			params["priority"] = normalized(entity.KindPriority)
		} else if p, ok := report.Enriched["priority"]; ok {
			params["priority"] = p
		}
		actions = append(actions, Action{Type: ActionCreateCRMTask, Parameters: params, Priority: 1})

	case intent.SearchLead:
		query := bag.Primary(entity.KindSearchTerm)
		if query == "" {
			query = bag.Primary(entity.KindCompany)
		}
		actions = append(actions, Action{
			Type:       ActionSearchCRMRecords,
			Parameters: map[string]interface{}{"query": query},
			Priority:   1,
		})
	}

	return actions
}

func eventParams(bag *entity.Bag, report *validate.Report, normalized func(entity.Kind) string) map[string]interface{} {
	params := map[string]interface{}{}
	if bag.Has(entity.KindParticipant) {
		params["participant"] = normalized(entity.KindParticipant)
	} else if bag.Has(entity.KindName) {
		params["participant"] = normalized(entity.KindName)
	}
	if dt, ok := report.Enriched["meetingDateTime"]; ok {
		params["dateTime"] = dt
	} else if span, ok := bag.PrimaryDate(); ok {
		params["dateTime"] = span.Start.Format(time.RFC3339)
	}
	if bag.Has(entity.KindDuration) {
		params["duration"] = normalized(entity.KindDuration)
	}
	return params
}
