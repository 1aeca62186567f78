package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookPublish(t *testing.T) {
	var received envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := NewWebhook(server.URL, true, nil)
	err := sink.Publish(TopicBadgeAward, map[string]any{"badge": map[string]any{"badge_id": "kido"}})
	require.NoError(t, err)

	assert.Equal(t, TopicBadgeAward, received.Topic)
	badge, ok := received.Msg["badge"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kido", badge["badge_id"])
}

func TestWebhookPublishSurfacesFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sink := NewWebhook(server.URL, true, nil)
	err := sink.Publish(TopicLogin, map[string]any{})
	assert.ErrorContains(t, err, "502")
}

func TestWebhookDisabledDropsEvents(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	sink := NewWebhook(server.URL, false, nil)
	require.NoError(t, sink.Publish(TopicIssuerNew, map[string]any{}))
	assert.False(t, called)
}

func TestFuncAdapter(t *testing.T) {
	var gotTopic string
	sink := Func(func(topic string, msg map[string]any) error {
		gotTopic = topic
		return nil
	})
	require.NoError(t, sink.Publish(TopicRankAdvance, nil))
	assert.Equal(t, TopicRankAdvance, gotTopic)
}
