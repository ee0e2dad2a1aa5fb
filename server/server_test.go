package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorales/careerforge/pkg/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.Model = "test-model"
	cfg.LLM.BaseURL = "http://localhost:1"
	return cfg
}

func TestNewWSServerRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewWSServer(cfg)
	require.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s, err := NewWSServer(testConfig())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocketMessageRouting(t *testing.T) {
	s, err := NewWSServer(testConfig())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Malformed optimize request comes back as a usage error without touching
	// the completion service.
	require.NoError(t, conn.WriteJSON(Message{Type: "optimize", Content: "linkedin"}))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Content, "Usage:")

	// Website generation refuses to run before a profile exists.
	require.NoError(t, conn.WriteJSON(Message{Type: "website"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Content, "No profile extracted yet")
}
