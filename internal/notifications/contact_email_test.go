package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrevoClientRequiresKeyAndSender(t *testing.T) {
	assert.Nil(t, NewBrevoClient("", "noreply@cajj.org", "", false))
	assert.Nil(t, NewBrevoClient("key", " ", "", false))
	assert.NotNil(t, NewBrevoClient("key", "noreply@cajj.org", "", false))
}

func TestSendContactNotification(t *testing.T) {
	var got brevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@brevo>"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("key", "noreply@cajj.org", "CAJJ", true).WithEndpoint(srv.URL)
	id, err := client.SendContactNotification(context.Background(), "contact@cajj.org", ContactMessage{
		Name:    "Alice <b>",
		Email:   "a@b.com",
		Message: "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "<abc@brevo>", id)
	assert.Equal(t, "key", apiKey)
	require.Len(t, got.To, 1)
	assert.Equal(t, "contact@cajj.org", got.To[0].Email)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "a@b.com", got.ReplyTo.Email)
	assert.Equal(t, "drop", got.Headers["X-Sib-Sandbox"])
	assert.Contains(t, got.HtmlContent, "Alice &lt;b&gt;")
}

func TestSendContactNotificationSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewBrevoClient("bad", "noreply@cajj.org", "CAJJ", false).WithEndpoint(srv.URL)
	_, err := client.SendContactNotification(context.Background(), "contact@cajj.org", ContactMessage{Name: "A", Email: "a@b.com", Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestSendContactNotificationNeedsInbox(t *testing.T) {
	client := NewBrevoClient("key", "noreply@cajj.org", "CAJJ", false)
	_, err := client.SendContactNotification(context.Background(), "", ContactMessage{})
	require.Error(t, err)
}
