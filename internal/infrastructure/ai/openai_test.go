package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/souq/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(baseURL string) *OpenAIDescriptionGenerator {
	return NewOpenAIDescriptionGenerator(config.OpenAIConfig{
		APIKey:  "sk-test",
		BaseURL: baseURL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestOpenAIDescriptionGenerator_GenerateDescription(t *testing.T) {
	t.Run("returns trimmed model output", func(t *testing.T) {
		var captured chatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			resp := chatResponse{}
			resp.Choices = append(resp.Choices, struct {
				Message chatMessage `json:"message"`
			}{Message: chatMessage{Role: "assistant", Content: "  Une melhfa élégante en voile léger.  "}})
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		gen := newTestGenerator(server.URL)
		desc, err := gen.GenerateDescription(context.Background(), "Melhfa", valueobject.NewMoneyMRU(decimal.NewFromInt(450)))
		require.NoError(t, err)
		assert.Equal(t, "Une melhfa élégante en voile léger.", desc)

		assert.Equal(t, "gpt-4o-mini", captured.Model)
		require.Len(t, captured.Messages, 2)
		assert.Contains(t, captured.Messages[1].Content, "Melhfa")
	})

	t.Run("surfaces api errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
		}))
		defer server.Close()

		_, err := newTestGenerator(server.URL).GenerateDescription(context.Background(), "Melhfa", valueobject.NewMoneyMRU(decimal.NewFromInt(450)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("empty choice list is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := newTestGenerator(server.URL).GenerateDescription(context.Background(), "Melhfa", valueobject.NewMoneyMRU(decimal.NewFromInt(450)))
		assert.Error(t, err)
	})

	t.Run("missing api key fails before any request", func(t *testing.T) {
		gen := NewOpenAIDescriptionGenerator(config.OpenAIConfig{BaseURL: "http://127.0.0.1:1"}, zap.NewNop())
		_, err := gen.GenerateDescription(context.Background(), "Melhfa", valueobject.NewMoneyMRU(decimal.NewFromInt(450)))
		assert.Error(t, err)
	})
}
