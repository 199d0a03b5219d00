// Package advisory looks up drug label warnings from an openFDA-compatible
// source. Lookups are best effort: failures degrade into a Result instead of
// propagating, so callers can always display something.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Status int

const (
	// StatusWarnings means the label carried warning text.
	StatusWarnings Status = iota
	// StatusClean means the label had no warnings field.
	StatusClean
	// StatusDegraded means the source could not be reached or parsed.
	StatusDegraded
)

func (s Status) String() string {
	switch s {
	case StatusWarnings:
		return "warnings"
	case StatusClean:
		return "clean"
	default:
		return "degraded"
	}
}

// Result is the outcome of a warnings lookup. Text is always printable.
type Result struct {
	Status Status `json:"status"`
	Text   string `json:"text"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type labelResponse struct {
	Results []struct {
		Warnings []string `json:"warnings"`
	} `json:"results"`
}

// LookupWarnings fetches the first matching label record for drugName and
// formats its warnings as bullet lines, one per sentence.
func (c *Client) LookupWarnings(ctx context.Context, drugName string) Result {
	endpoint := fmt.Sprintf("%s/drug/label.json?search=%s&limit=1", c.baseURL, url.QueryEscape(drugName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return degraded(drugName, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return degraded(drugName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return degraded(drugName, fmt.Errorf("label source returned status %d", resp.StatusCode))
	}

	var payload labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return degraded(drugName, err)
	}

	if len(payload.Results) == 0 || len(payload.Results[0].Warnings) == 0 {
		return Result{
			Status: StatusClean,
			Text:   fmt.Sprintf("No known harmful interactions for %s.", drugName),
		}
	}

	var bullets []string
	for _, warning := range payload.Results[0].Warnings {
		for _, sentence := range strings.Split(warning, ". ") {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			bullets = append(bullets, "• "+sentence)
		}
	}

	return Result{
		Status: StatusWarnings,
		Text:   fmt.Sprintf("Warning for %s:\n\n%s", drugName, strings.Join(bullets, "\n\n")),
	}
}

func degraded(drugName string, err error) Result {
	return Result{
		Status: StatusDegraded,
		Text:   fmt.Sprintf("Error fetching interaction data for %s: %v", drugName, err),
	}
}
