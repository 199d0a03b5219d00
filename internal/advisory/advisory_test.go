package advisory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupWarningsFormatsBullets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "search=Aspirin")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"warnings":["Do not exceed recommended dose. May cause stomach bleeding."]}]}`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL).LookupWarnings(context.Background(), "Aspirin")
	require.Equal(t, StatusWarnings, res.Status)
	assert.Contains(t, res.Text, "Warning for Aspirin:")
	assert.Contains(t, res.Text, "• Do not exceed recommended dose")
	assert.Contains(t, res.Text, "• May cause stomach bleeding.")
}

func TestLookupWarningsClean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{}]}`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL).LookupWarnings(context.Background(), "Paracetamol")
	require.Equal(t, StatusClean, res.Status)
	assert.Equal(t, "No known harmful interactions for Paracetamol.", res.Text)
}

func TestLookupWarningsDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	res := NewClient(srv.URL).LookupWarnings(context.Background(), "Ibuprofen")
	require.Equal(t, StatusDegraded, res.Status)
	assert.Contains(t, res.Text, "Error fetching interaction data for Ibuprofen")
}

func TestLookupWarningsDegradesOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := NewClient(srv.URL).LookupWarnings(context.Background(), "Ibuprofen")
	assert.Equal(t, StatusDegraded, res.Status)
}
