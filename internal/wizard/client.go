package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// genericFailure is shown when the server gives us nothing usable.
const genericFailure = "Something went wrong submitting the form. Please try again."

// Outcome is the result of one submit attempt. Exactly one of the two
// variants is produced for any server behavior; the client never propagates
// an error past itself.
type Outcome interface {
	isOutcome()
}

// Accepted is the success variant, carrying everything the success dialog
// itemizes.
type Accepted struct {
	Message                string
	ConfirmationEmailSent  bool
	ConfirmationEmailError string
	FallbackGroupUsed      bool
	TargetRecipients       []string
	VolunteerID            string
	StorageWarning         string
}

// Rejected is the failure variant with a single actionable message.
type Rejected struct {
	Message string
}

func (Accepted) isOutcome() {}
func (Rejected) isOutcome() {}

// envelope mirrors the server's JSON response loosely enough to survive
// partial bodies.
type envelope struct {
	OK                     *bool    `json:"ok"`
	Message                string   `json:"message"`
	Error                  string   `json:"error"`
	ConfirmationEmailSent  bool     `json:"confirmationEmailSent"`
	ConfirmationEmailError string   `json:"confirmationEmailError"`
	FallbackGroupUsed      bool     `json:"fallbackGroupUsed"`
	TargetRecipients       []string `json:"targetRecipients"`
	VolunteerID            string   `json:"volunteerId"`
	StorageWarning         string   `json:"storageWarning"`
}

// PayloadFunc maps the wizard's flat value snapshot to the JSON body a
// specific endpoint expects.
type PayloadFunc func(values map[string]Value) any

// Client posts one wizard snapshot to a submission endpoint and normalizes
// the heterogeneous response into an Outcome.
type Client struct {
	httpClient *http.Client
	url        string
	payload    PayloadFunc // nil means multipart encoding
}

// NewJSONClient builds a client that serializes the snapshot through fn and
// posts it as application/json.
func NewJSONClient(url string, fn PayloadFunc) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		payload:    fn,
	}
}

// NewMultipartClient builds a client that posts the snapshot as multipart
// form data, with file values as attachment parts.
func NewMultipartClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		url:        url,
	}
}

// Submit performs exactly one POST. Any transport or parse failure becomes a
// Rejected outcome; there are no retries and no errors escape.
func (c *Client) Submit(ctx context.Context, values map[string]Value) Outcome {
	req, err := c.buildRequest(ctx, values)
	if err != nil {
		return Rejected{Message: genericFailure}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rejected{Message: genericFailure}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var env envelope
	parsed := json.Unmarshal(body, &env) == nil

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 &&
		parsed && env.Error == "" && (env.OK == nil || *env.OK)
	if !ok {
		msg := genericFailure
		if parsed && env.Error != "" {
			msg = env.Error
		}
		return Rejected{Message: msg}
	}

	recipients := env.TargetRecipients
	if recipients == nil {
		recipients = []string{}
	}
	return Accepted{
		Message:                env.Message,
		ConfirmationEmailSent:  env.ConfirmationEmailSent,
		ConfirmationEmailError: env.ConfirmationEmailError,
		FallbackGroupUsed:      env.FallbackGroupUsed,
		TargetRecipients:       recipients,
		VolunteerID:            env.VolunteerID,
		StorageWarning:         env.StorageWarning,
	}
}

func (c *Client) buildRequest(ctx context.Context, values map[string]Value) (*http.Request, error) {
	if c.payload != nil {
		buf, err := json.Marshal(c.payload(values))
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(buf))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, v := range values {
		if v.File != nil {
			part, err := mw.CreateFormFile(name, v.File.Name)
			if err != nil {
				return nil, err
			}
			if _, err := part.Write(v.File.Data); err != nil {
				return nil, err
			}
			continue
		}
		for _, s := range v.Strings {
			if err := mw.WriteField(name, s); err != nil {
				return nil, err
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}
