package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "Guest needs attention: 201001", Subject(&Escalation{Sender: "201001"}))
	assert.Equal(t, "Guest needs attention: Sara", Subject(&Escalation{Sender: "201001", SenderName: "Sara"}))
}

func TestFormatEmailHTML(t *testing.T) {
	body := formatEmailHTML(&Escalation{
		Sender:   "201001",
		Question: "<b>refund</b> please",
		Reply:    "A human will help.",
		Kind:     "escalate",
		Reason:   "Requires human intervention",
		At:       time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC),
	})

	assert.Contains(t, body, "&lt;b&gt;refund&lt;/b&gt; please")
	assert.Contains(t, body, "Escalated")
	assert.Contains(t, body, "Mar 1, 2026 3:04 PM")
	assert.NotContains(t, body, "Error:")

	failed := formatEmailHTML(&Escalation{Sender: "1", Error: "timeout"})
	assert.Contains(t, failed, "Auto-reply failed")
	assert.Contains(t, failed, "timeout")
}

func TestResendNotifier(t *testing.T) {
	assert.Nil(t, NewResendNotifier("", "from@example.com"))
	assert.False(t, NewResendNotifier("re_test", "").IsConfigured())

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	n := NewResendNotifier("re_test", "concierge@example.com")
	require.True(t, n.IsConfigured())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	n.client.BaseURL = base

	err = n.Send(context.Background(), &Escalation{Sender: "201001", Question: "help"}, "host@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Guest needs attention: 201001", got["subject"])
	assert.Equal(t, "concierge@example.com", got["from"])

	assert.Error(t, n.Send(context.Background(), &Escalation{}, ""))
}
