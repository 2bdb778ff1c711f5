package wizard

import (
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonClientFor(srv *httptest.Server) *Client {
	return NewJSONClient(srv.URL, func(values map[string]Value) any {
		return map[string]string{"name": values["name"].First()}
	})
}

func TestSubmit_SuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{
			"ok": true,
			"message": "thanks",
			"confirmationEmailSent": true,
			"fallbackGroupUsed": true,
			"targetRecipients": ["team@example.org"]
		}`))
	}))
	defer srv.Close()

	outcome := jsonClientFor(srv).Submit(t.Context(), map[string]Value{
		"name": {Strings: []string{"Ana"}},
	})

	accepted, ok := outcome.(Accepted)
	require.True(t, ok)
	assert.Equal(t, "thanks", accepted.Message)
	assert.True(t, accepted.ConfirmationEmailSent)
	assert.True(t, accepted.FallbackGroupUsed)
	assert.Equal(t, []string{"team@example.org"}, accepted.TargetRecipients)
}

func TestSubmit_ServerErrorStringPreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "message is required"}`))
	}))
	defer srv.Close()

	outcome := jsonClientFor(srv).Submit(t.Context(), nil)

	rejected, ok := outcome.(Rejected)
	require.True(t, ok)
	assert.Equal(t, "message is required", rejected.Message)
}

func TestSubmit_MalformedBodyNeverPanics(t *testing.T) {
	bodies := []struct {
		status int
		body   string
	}{
		{http.StatusOK, `<html>definitely not json</html>`},
		{http.StatusOK, ``},
		{http.StatusInternalServerError, `{"half": `},
		{http.StatusOK, `{"ok": false}`},
		{http.StatusBadGateway, `upstream exploded`},
	}
	for _, tc := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))

		outcome := jsonClientFor(srv).Submit(t.Context(), nil)
		srv.Close()

		rejected, ok := outcome.(Rejected)
		require.True(t, ok, "status %d body %q", tc.status, tc.body)
		assert.Equal(t, genericFailure, rejected.Message)
	}
}

func TestSubmit_NetworkFailureBecomesRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	outcome := jsonClientFor(srv).Submit(t.Context(), nil)

	rejected, ok := outcome.(Rejected)
	require.True(t, ok)
	assert.Equal(t, genericFailure, rejected.Message)
}

func TestSubmit_MultipartEncodesFieldsAndFiles(t *testing.T) {
	var (
		gotValues map[string][]string
		gotFile   string
		gotData   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotValues = r.MultipartForm.Value
		fh := r.MultipartForm.File["supportLetter"][0]
		gotFile = fh.Filename
		f, err := fh.Open()
		require.NoError(t, err)
		defer f.Close()
		gotData, _ = io.ReadAll(f)

		w.Write([]byte(`{"ok": true, "message": "received"}`))
	}))
	defer srv.Close()

	client := NewMultipartClient(srv.URL)
	outcome := client.Submit(t.Context(), map[string]Value{
		"institutionName": {Strings: []string{"Riverside High"}},
		"agreements":      {Strings: []string{"code-of-conduct", "data-policy"}},
		"supportLetter":   {File: &File{Name: "letter.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}},
	})

	require.IsType(t, Accepted{}, outcome)
	assert.Equal(t, []string{"Riverside High"}, gotValues["institutionName"])
	assert.ElementsMatch(t, []string{"code-of-conduct", "data-policy"}, gotValues["agreements"])
	assert.Equal(t, "letter.pdf", gotFile)
	assert.True(t, strings.HasPrefix(string(gotData), "%PDF"))
}
