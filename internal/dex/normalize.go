package dex

import (
	"encoding/json"
	"strings"

	"dex-code-reviewer/constants"
	"dex-code-reviewer/internal/models"
)

// responseEnvelope covers every body shape the backend has been observed to
// return. The fields are mutually exclusive in practice; precedence below
// follows the order the original service introduced them.
type responseEnvelope struct {
	Comments []models.Annotation `json:"comments"`
	Choices  []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Message string `json:"message"`
}

// normalize maps a 2xx response body onto the feedback union. A body that
// parses but matches no known shape, or that carries only empty content, is
// a malformed-response failure, never a silent success.
func normalize(raw []byte) (*models.Feedback, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, models.Failuref(models.FailureMalformedResponse,
			"review backend body is not valid JSON: %v", err)
	}

	if len(envelope.Comments) > 0 {
		annotations := make([]models.Annotation, 0, len(envelope.Comments))
		for _, a := range envelope.Comments {
			if a.LineContent == "" && a.Body == "" {
				continue
			}
			annotations = append(annotations, a)
		}
		if len(annotations) == 0 {
			return nil, models.Failuref(models.FailureMalformedResponse,
				"review backend returned only empty comment objects")
		}
		return models.AnnotationsFeedback(annotations), nil
	}

	if len(envelope.Choices) > 0 {
		return textFeedback(envelope.Choices[0].Message.Content)
	}

	if envelope.Message != "" {
		return textFeedback(envelope.Message)
	}

	return nil, models.Failuref(models.FailureMalformedResponse,
		"unexpected response format from review backend")
}

func textFeedback(content string) (*models.Feedback, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, models.Failuref(models.FailureMalformedResponse,
			"review backend returned empty message content")
	}
	if text == constants.CleanSentinel {
		return models.CleanFeedback(), nil
	}
	return models.SummaryFeedback(text), nil
}
