package dex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dex-code-reviewer/config"
	"dex-code-reviewer/constants"
	"dex-code-reviewer/internal/models"
)

func newTestClient(t *testing.T, url string, maxRetries int) *Client {
	t.Helper()
	c := NewClient(config.BackendConfig{
		URL:            url,
		Shape:          constants.ShapeChat,
		SessionCookie:  "session=test",
		MaxRetries:     maxRetries,
		TimeoutSeconds: 2,
	}, zerolog.Nop())
	c.backoff = time.Millisecond
	return c
}

func TestRequestNormalization(t *testing.T) {
	t.Run("Choices with clean sentinel yields Clean", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":"Everything looks good."}}]}`))
		}))
		defer server.Close()

		feedback, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackClean, feedback.Kind)
	})

	t.Run("Choices with other text yields Summary with exact text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":"Error handling is missing around the new call."}}]}`))
		}))
		defer server.Close()

		feedback, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackSummary, feedback.Kind)
		assert.Equal(t, "Error handling is missing around the new call.", feedback.Summary)
	})

	t.Run("No content status yields Clean", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		feedback, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackClean, feedback.Kind)
	})

	t.Run("Comment list yields Annotations in order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"comments":[{"line":"added one","body":"first"},{"line":"added two","body":"second"}]}`))
		}))
		defer server.Close()

		feedback, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.NoError(t, err)
		require.Equal(t, models.FeedbackAnnotations, feedback.Kind)
		require.Len(t, feedback.Annotations, 2)
		assert.Equal(t, "added one", feedback.Annotations[0].LineContent)
		assert.Equal(t, "second", feedback.Annotations[1].Body)
	})

	t.Run("Top-level message yields Summary", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"Needs work in the loop body."}`))
		}))
		defer server.Close()

		feedback, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackSummary, feedback.Kind)
	})
}

func TestRequestFailures(t *testing.T) {
	t.Run("Invalid JSON body is MalformedResponse and not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.Error(t, err)
		assert.True(t, models.IsFailureKind(err, models.FailureMalformedResponse))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Unknown object shape is MalformedResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"fine"}`))
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		assert.True(t, models.IsFailureKind(err, models.FailureMalformedResponse))
	})

	t.Run("Empty choices content is MalformedResponse not silent success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		assert.True(t, models.IsFailureKind(err, models.FailureMalformedResponse))
	})

	t.Run("Unauthorized is terminal and not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
		require.Error(t, err)
		assert.True(t, models.IsFailureKind(err, models.FailureUnauthorized))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Server errors retried exactly up to the configured bound", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 4).Request(context.Background(), "+diff", "rules")
		require.Error(t, err)
		assert.True(t, models.IsFailureKind(err, models.FailureUnavailable))
		assert.Equal(t, int32(4), calls.Load())
	})

	t.Run("Unreachable backend is Unavailable", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1", 2)
		_, err := client.Request(context.Background(), "+diff", "rules")
		require.Error(t, err)
		assert.True(t, models.IsFailureKind(err, models.FailureUnavailable))
	})

	t.Run("Empty diff is rejected before any call", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 3).Request(context.Background(), "", "rules")
		assert.Error(t, err)
		assert.Zero(t, calls.Load(), "backend must not be called for empty diffs")
	})
}

func TestRequestAttachesSessionCookie(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 3).Request(context.Background(), "+diff", "rules")
	require.NoError(t, err)
	assert.Equal(t, "session=test", gotCookie)
}

func TestBuildPayload(t *testing.T) {
	t.Run("Simple shape carries diff and rules verbatim", func(t *testing.T) {
		raw, err := buildPayload(constants.ShapeSimple, "+added", "my rules")
		require.NoError(t, err)

		var payload simplePayload
		require.NoError(t, json.Unmarshal(raw, &payload))
		assert.Equal(t, "+added", payload.Diff)
		assert.Equal(t, "my rules", payload.Rules)
	})

	t.Run("Chat shape embeds criteria, sentinel, and the diff last", func(t *testing.T) {
		raw, err := buildPayload(constants.ShapeChat, "+added line", "my rules")
		require.NoError(t, err)

		var payload chatPayload
		require.NoError(t, json.Unmarshal(raw, &payload))
		require.Len(t, payload.Messages, 1)
		assert.Equal(t, "user", payload.Messages[0].Role)
		require.Len(t, payload.Messages[0].Content, 1)

		text := payload.Messages[0].Content[0].Text
		assert.Contains(t, text, "my rules")
		assert.Contains(t, text, constants.CleanSentinel)
		assert.True(t, strings.HasSuffix(text, "+added line"), "diff must be the final element")
	})

	t.Run("Unknown shape is an error", func(t *testing.T) {
		_, err := buildPayload("xml", "+a", "r")
		assert.Error(t, err)
	})
}
