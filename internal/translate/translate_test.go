package translate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirius241/Pharmacy-Managment-System/internal/translate"
)

func TestTranslateConcatenatesSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "tl=es")
		assert.Contains(t, r.URL.RawQuery, "q=Insufficient+stock.")
		_, _ = w.Write([]byte(`[[["Stock ","Insufficient ",null],["insuficiente.","stock.",null]],null,"en"]`))
	}))
	defer srv.Close()

	res := translate.New(srv.URL).Translate(context.Background(), "Insufficient stock.", "es")
	require.True(t, res.Translated)
	assert.Equal(t, "Stock insuficiente.", res.Text)
}

func TestTranslateFallsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := translate.New(srv.URL).Translate(context.Background(), "Invalid credentials.", "fr")
	assert.False(t, res.Translated)
	assert.Equal(t, "Invalid credentials.", res.Text)
}

func TestTranslateFallsBackOnBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	res := translate.New(srv.URL).Translate(context.Background(), "hello", "de")
	assert.False(t, res.Translated)
	assert.Equal(t, "hello", res.Text)
}

func TestTranslateSkipsEnglishAndEmptyTargets(t *testing.T) {
	// No server: these must not touch the network at all.
	tr := translate.New("http://127.0.0.1:0")

	for _, target := range []string{"", "en"} {
		res := tr.Translate(context.Background(), "hello", target)
		assert.False(t, res.Translated)
		assert.Equal(t, "hello", res.Text)
	}
}
