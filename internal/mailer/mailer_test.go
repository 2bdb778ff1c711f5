package mailer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_PostsAuthorizedMessage(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-123")
	err := client.Send(t.Context(), Message{
		From:    "no-reply@brightcode.org",
		To:      []string{"team@example.org"},
		ReplyTo: []string{"ana@example.com"},
		Subject: "New workshop RSVP",
		Text:    "First name: Ana\n",
		Attachments: []Attachment{
			{Filename: "submission.csv", ContentType: "text/csv", Content: []byte("a,b\n1,2\n")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"team@example.org"}, got.To)
	assert.Equal(t, "New workshop RSVP", got.Subject)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, []byte("a,b\n1,2\n"), got.Attachments[0].Content, "attachment survives the base64 round trip")
}

func TestSend_ProviderErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "invalid sender domain"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "key-123").Send(t.Context(), Message{
		From: "x@y.z", To: []string{"team@example.org"}, Subject: "s", Text: "t",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sender domain")
}

func TestSend_RefusesEmptyRecipientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should reach the provider")
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "key-123").Send(t.Context(), Message{Subject: "s"})
	require.Error(t, err)
}
