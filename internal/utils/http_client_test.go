package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_ReturnsUsableClient(t *testing.T) {
	client := NewHTTPClient()

	require.NotNil(t, client)
	require.NotNil(t, client.Client)
	require.NotNil(t, client.R())
}

func TestNewHTTPClient_InstancesAreIndependent(t *testing.T) {
	// Separate connection pools and settings per instance; adapters
	// must not leak base URLs into each other.
	first := NewHTTPClient()
	second := NewHTTPClient()

	assert.NotSame(t, first.Client, second.Client)

	first.SetBaseURL("http://only-first.local")
	assert.Empty(t, second.BaseURL)
}

func TestNewHTTPClient_IdentifiesAsCardsync(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewHTTPClient().R().Get(srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "cardsync", gotUserAgent)
}
