// Package translate converts user-facing text into a target language via a
// googletrans-compatible endpoint. Failures always fall back to the original
// text so a broken translation service never blocks a workflow.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Result distinguishes a translated text from an untranslated fallback.
type Result struct {
	Text       string `json:"text"`
	Translated bool   `json:"translated"`
}

type Translator struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string) *Translator {
	return &Translator{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Translate renders text in the target language code. Empty or "en" targets,
// and any transport or parse failure, return the original text untranslated.
func (t *Translator) Translate(ctx context.Context, text, target string) Result {
	if text == "" || target == "" || target == "en" {
		return Result{Text: text}
	}

	endpoint := fmt.Sprintf("%s/translate_a/single?client=gtx&sl=auto&tl=%s&dt=t&q=%s",
		t.baseURL, url.QueryEscape(target), url.QueryEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return t.fallback(text, err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.fallback(text, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return t.fallback(text, fmt.Errorf("translation service returned status %d", resp.StatusCode))
	}

	// Response shape: [[[translated, original, ...], ...], ...]
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return t.fallback(text, err)
	}
	if len(payload) == 0 {
		return t.fallback(text, fmt.Errorf("empty translation response"))
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return t.fallback(text, err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var translated string
		if err := json.Unmarshal(segment[0], &translated); err != nil {
			continue
		}
		sb.WriteString(translated)
	}
	if sb.Len() == 0 {
		return t.fallback(text, fmt.Errorf("no translated segments"))
	}
	return Result{Text: sb.String(), Translated: true}
}

func (t *Translator) fallback(text string, err error) Result {
	logrus.WithError(err).Debug("translation failed, returning original text")
	return Result{Text: text}
}
