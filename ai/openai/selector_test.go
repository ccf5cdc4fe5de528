package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/semsimilar/ai"
	"github.com/poiesic/semsimilar/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bankCandidates = []core.SenseEntry{
	{Id: "bank.n.01", Lemma: "bank", Gloss: "sloping land beside a body of water"},
	{Id: "bank.n.02", Lemma: "bank", Gloss: "a financial institution", Examples: []string{"he cashed a check at the bank"}},
}

// chatServer fakes the chat completions endpoint, answering with replies in
// order and repeating the last one.
type chatServer struct {
	mu       sync.Mutex
	replies  []string
	requests []string
}

func (s *chatServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/chat/completions" {
		http.NotFound(w, r)
		return
	}
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	reply := s.replies[min(len(s.requests), len(s.replies)-1)]
	s.requests = append(s.requests, string(body))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": reply},
			"finish_reason": "stop",
		}},
	})
}

func (s *chatServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func newTestSelector(t *testing.T, replies ...string) (*SenseSelector, *chatServer) {
	t.Helper()
	fake := &chatServer{replies: replies}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	selector, err := newSenseSelector(ai.NewConfig(
		ai.WithHost(srv.URL),
		ai.WithModel("test-model"),
	))
	require.NoError(t, err)
	return selector, fake
}

func TestSenseSelector_Select(t *testing.T) {
	selector, fake := newTestSelector(t, `{"sense":"bank.n.02"}`)

	id, err := selector.SelectSense(context.Background(), "bank", []string{"cash", "check", "bank"}, bankCandidates)
	require.NoError(t, err)
	assert.Equal(t, "bank.n.02", id)
	require.Equal(t, 1, fake.count())

	request := fake.requests[0]
	assert.Contains(t, request, "bank.n.01")
	assert.Contains(t, request, "cash check bank")
	assert.Contains(t, request, "json_object")
}

func TestSenseSelector_None(t *testing.T) {
	selector, _ := newTestSelector(t, `{"sense":"none"}`)

	id, err := selector.SelectSense(context.Background(), "bank", []string{"bank"}, bankCandidates)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSenseSelector_RepairsAndRetries(t *testing.T) {
	selector, fake := newTestSelector(t, "not json at all", "```json\n{sense\": \"bank.n.01\",}\n```")

	id, err := selector.SelectSense(context.Background(), "bank", []string{"river", "bank"}, bankCandidates)
	require.NoError(t, err)
	assert.Equal(t, "bank.n.01", id)
	assert.Equal(t, 2, fake.count())
}

func TestSenseSelector_GivesUp(t *testing.T) {
	selector, fake := newTestSelector(t, "still not json")

	_, err := selector.SelectSense(context.Background(), "bank", []string{"bank"}, bankCandidates)
	require.Error(t, err)
	assert.Equal(t, ai.DefaultConfig().MaxAttempts, fake.count())
}

func TestSenseSelector_NoCandidates(t *testing.T) {
	selector, fake := newTestSelector(t, `{"sense":"x"}`)

	id, err := selector.SelectSense(context.Background(), "bank", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Zero(t, fake.count())
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt("bank", []string{"river's", "bank"}, bankCandidates)

	assert.True(t, strings.HasPrefix(prompt, "Word: bank\n"))
	assert.Contains(t, prompt, "Context: rivers bank\n")
	assert.Contains(t, prompt, "- bank.n.01: sloping land beside a body of water\n")
	assert.Contains(t, prompt, "(e.g. he cashed a check at the bank)")
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, provider.SenseSelector())
	assert.NoError(t, provider.Close())

	_, err = NewProvider(ai.NewConfig(ai.WithModel("")))
	assert.Error(t, err)
}
