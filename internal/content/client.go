// Package content is the HTTP client for the headless CMS: workshop document
// reads, the volunteer write path, and the best-effort link of a volunteer
// record into its parent workshop.
//
// Error classification happens here, at the collaborator boundary: callers
// match on the exported sentinels instead of sniffing response bodies.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/brightcode-org/outreach/internal/model"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrPermissionDenied is returned when the write credential lacks the rights
// for a mutation. Callers may degrade to email-only mode on this error;
// every other mutation failure must be treated as fatal.
var ErrPermissionDenied = errors.New("content store permission denied")

// Client talks to the CMS data API. Reads use the read token, mutations the
// write token.
type Client struct {
	baseURL    string
	dataset    string
	readToken  string
	writeToken string
	httpClient *http.Client
}

// NewClient constructs a CMS client.
func NewClient(baseURL, dataset, readToken, writeToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		dataset:    dataset,
		readToken:  readToken,
		writeToken: writeToken,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetWorkshop fetches one workshop document by id.
func (c *Client) GetWorkshop(ctx context.Context, id string) (*model.Workshop, error) {
	endpoint := fmt.Sprintf("%s/data/query/%s?id=%s&type=workshop",
		c.baseURL, c.dataset, url.QueryEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.readToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query workshop: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("query workshop: cms returned %s", resp.Status)
	}

	var out struct {
		Result *model.Workshop `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode workshop: %w", err)
	}
	if out.Result == nil {
		return nil, ErrNotFound
	}
	return out.Result, nil
}

// CreateVolunteer writes a volunteer document and returns its generated id.
// A 401/403 from the CMS is classified as ErrPermissionDenied.
func (c *Client) CreateVolunteer(ctx context.Context, rec model.VolunteerRecord) (string, error) {
	doc := map[string]any{
		"_type":        "volunteer",
		"workshopId":   rec.WorkshopID,
		"firstName":    rec.FirstName,
		"lastName":     rec.LastName,
		"email":        rec.Email,
		"phone":        rec.Phone,
		"interests":    rec.Interests,
		"availability": rec.Availability,
		"experience":   rec.Experience,
		"notes":        rec.Notes,
		"createdAt":    rec.CreatedAt,
	}

	results, err := c.mutate(ctx, map[string]any{"create": doc})
	if err != nil {
		return "", err
	}
	if len(results) == 0 || results[0].ID == "" {
		return "", fmt.Errorf("create volunteer: cms returned no document id")
	}
	return results[0].ID, nil
}

// AppendWorkshopResponse links a volunteer document into the parent
// workshop's response list. Last write wins; the CMS applies no concurrency
// control on the array.
func (c *Client) AppendWorkshopResponse(ctx context.Context, workshopID, volunteerID string) error {
	patch := map[string]any{
		"patch": map[string]any{
			"id": workshopID,
			"insert": map[string]any{
				"after": "responses[-1]",
				"items": []map[string]string{{"_type": "reference", "_ref": volunteerID}},
			},
		},
	}
	_, err := c.mutate(ctx, patch)
	return err
}

type mutationResult struct {
	ID string `json:"id"`
}

func (c *Client) mutate(ctx context.Context, mutations ...map[string]any) ([]mutationResult, error) {
	body, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, fmt.Errorf("encode mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s", c.baseURL, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.writeToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mutate: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrPermissionDenied
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("mutate: cms returned %s: %s", resp.Status, raw)
	}

	var out struct {
		Results []mutationResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode mutation response: %w", err)
	}
	return out.Results, nil
}
