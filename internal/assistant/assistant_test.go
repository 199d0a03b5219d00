package assistant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirius241/Pharmacy-Managment-System/internal/assistant"
)

func TestAskRelaysReplyAndRecordsHistory(t *testing.T) {
	svc := assistant.NewService(&stubGenerator{reply: "Take it with food."})

	first := svc.Ask(context.Background(), uuid.Nil, "Can I take aspirin on an empty stomach?")
	require.NotEqual(t, uuid.Nil, first.ConversationID)
	assert.Equal(t, "Take it with food.", first.Text)
	assert.False(t, first.Degraded)

	second := svc.Ask(context.Background(), first.ConversationID, "Thanks")
	assert.Equal(t, first.ConversationID, second.ConversationID)

	history := svc.History(first.ConversationID)
	require.Len(t, history, 4)
	assert.Equal(t, assistant.RoleUser, history[0].Role)
	assert.Equal(t, "Can I take aspirin on an empty stomach?", history[0].Text)
	assert.Equal(t, assistant.RoleAssistant, history[1].Role)
	assert.Equal(t, assistant.RoleUser, history[2].Role)
	assert.Equal(t, "Thanks", history[2].Text)
	assert.Equal(t, assistant.RoleAssistant, history[3].Role)
}

func TestAskSubstitutesFallbackForEmptyReply(t *testing.T) {
	svc := assistant.NewService(&stubGenerator{reply: ""})

	reply := svc.Ask(context.Background(), uuid.Nil, "hello")
	assert.Equal(t, assistant.FallbackReply, reply.Text)
	assert.True(t, reply.Degraded)

	history := svc.History(reply.ConversationID)
	require.Len(t, history, 2)
	assert.Equal(t, assistant.FallbackReply, history[1].Text)
}

func TestAskDegradesOnGeneratorError(t *testing.T) {
	svc := assistant.NewService(&stubGenerator{err: errors.New("quota exceeded")})

	reply := svc.Ask(context.Background(), uuid.Nil, "hello")
	assert.Equal(t, assistant.FallbackReply, reply.Text)
	assert.True(t, reply.Degraded)
}

func TestGeminiClientParsesCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-pro:generateContent")
		assert.Contains(t, r.URL.RawQuery, "key=test-key")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"there."}]}}]}`))
	}))
	defer srv.Close()

	client := assistant.NewGeminiClient(srv.URL, "test-key", "gemini-pro")
	reply, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", reply)
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := assistant.NewGeminiClient(srv.URL, "test-key", "gemini-pro")
	reply, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.reply, s.err
}
