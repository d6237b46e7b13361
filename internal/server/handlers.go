package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	stderrors "nia-nlu/internal/common/errors"
	"nia-nlu/internal/common/validation"
	"nia-nlu/internal/nlu/classify"
	"nia-nlu/internal/nlu/intent"
	"nia-nlu/internal/nlu/language"
	"nia-nlu/pkg/corpus"
)

func parseIntentSchema() validation.JSONSchema {
	maxLen := 2000
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"message": {Type: "string", Description: "utterance to classify", MaxLength: &maxLen},
			"context": {Type: "object", Description: "opaque conversation context"},
		},
		Required: []string{"message"},
	}
}

func (s *Server) handleParseIntent(c *gin.Context) {
	payload, ok := s.bindValidated(c, parseIntentSchema())
	if !ok {
		return
	}
	message, _ := payload["message"].(string)

	if s.cache != nil {
		if cached, hit := s.cache.Get(c.Request.Context(), message); hit {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached, "cached": true})
			return
		}
	}

	result := s.engine.Classify(c.Request.Context(), message)

	if s.cache != nil {
		s.cache.Put(c.Request.Context(), message, result)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	payload, ok := s.bindValidated(c, parseIntentSchema())
	if !ok {
		return
	}
	message, _ := payload["message"].(string)

	result := s.engine.Classify(c.Request.Context(), message)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"language":  language.Detect(message),
			"sentiment": language.AnalyzeSentiment(message),
			"tokens":    classify.Features(message),
			"result":    result,
		},
	})
}

func (s *Server) handleRetrain(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respondError(c, stderrors.NewInputParsingFailedError(err))
		return
	}

	parsed, err := corpus.Parse(raw)
	if err != nil {
		s.respondError(c, stderrors.NewCorpusInvalidError(err.Error()))
		return
	}

	docs := make([]classify.Document, 0, len(parsed.Documents))
	for _, d := range parsed.Documents {
		if !intent.IsValid(d.Label) {
			s.respondError(c, stderrors.NewCorpusInvalidError("unknown intent label: "+d.Label))
			return
		}
		docs = append(docs, classify.Document{Text: d.Text, Label: intent.Intent(d.Label)})
	}

	if err := s.engine.Retrain(docs); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.engine.ModelInfo()})
}

func (s *Server) handleModelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.engine.ModelInfo()})
}

func (s *Server) handleHealth(c *gin.Context) {
	health := gin.H{
		"status":       "ok",
		"modelTrained": s.engine.ModelInfo().Trained,
		"cacheEnabled": s.cache != nil,
	}
	c.JSON(http.StatusOK, health)
}

// bindValidated decodes the JSON body and runs it through the endpoint
// schema.
func (s *Server) bindValidated(c *gin.Context, schema validation.JSONSchema) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.respondError(c, stderrors.NewInputParsingFailedError(err))
		return nil, false
	}

	if result := validation.ValidateInput(payload, schema); !result.Valid {
		s.respondError(c, stderrors.NewValidationFailedError(validation.FormatErrors(result)))
		return nil, false
	}
	return payload, true
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := stderrors.HTTPStatus(err)
	body := gin.H{"success": false}
	fields := map[string]interface{}{
		"requestId": c.GetString("requestID"),
		"status":    status,
	}
	if stdErr, ok := err.(*stderrors.StandardError); ok {
		body["error"] = stdErr
		fields["category"] = stderrors.GetErrorCategory(stdErr.Code)
	} else {
		body["error"] = gin.H{"message": err.Error()}
	}
	s.log.WithError(err).Warn("request failed", fields)
	c.JSON(status, body)
}
