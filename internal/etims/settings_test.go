package etims

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(&Config{
		ETIMSURL:       server.URL,
		APIKey:         "test-key",
		APISecret:      "test-secret",
		UnknownCompany: "Unknown",
	})
	client.ActiveURL = server.URL
	client.Mode = "vpn"
	return client, server
}

func TestSettingsProviderActive(t *testing.T) {
	hits := 0
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Contains(t, r.URL.Path, "KRA eTims Settings")
		fmt.Fprint(w, `{"data":[{"name":"S1","company":"Acme"},{"name":"S2","company":"Beta"}]}`)
	}))
	defer server.Close()

	provider := NewSettingsProvider(client)
	settings, err := provider.Active()
	require.NoError(t, err)

	require.Len(t, settings, 2)
	assert.Equal(t, Settings{Name: "S1", Company: "Acme"}, settings[0])
	assert.Equal(t, "Beta (S2)", settings[1].Label())
}

func TestSettingsProviderCachesAcrossCalls(t *testing.T) {
	hits := 0
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"data":[{"name":"S1","company":"Acme"}]}`)
	}))
	defer server.Close()

	provider := NewSettingsProvider(client)

	_, err := provider.Active()
	require.NoError(t, err)
	_, err = provider.Active()
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "settings are fetched once per run")

	provider.Invalidate()
	_, err = provider.Active()
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestSettingsProviderUnknownCompanyFallback(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"name":"S1","company":""},{"name":"S2"}]}`)
	}))
	defer server.Close()

	provider := NewSettingsProvider(client)
	settings, err := provider.Active()
	require.NoError(t, err)

	require.Len(t, settings, 2)
	assert.Equal(t, "Unknown", settings[0].Company)
	assert.Equal(t, "Unknown", settings[1].Company)
}

func TestSettingsProviderConfigurableFallback(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"name":"S1"}]}`)
	}))
	defer server.Close()
	client.Config.UnknownCompany = "Unassigned"

	provider := NewSettingsProvider(client)
	settings, err := provider.Active()
	require.NoError(t, err)

	require.Len(t, settings, 1)
	assert.Equal(t, "Unassigned (S1)", settings[0].Label())
}

func TestSettingsProviderEmptyList(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	provider := NewSettingsProvider(client)
	settings, err := provider.Active()
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestSettingsProviderSkipsNameless(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"company":"Acme"},{"name":"S2","company":"Beta"}]}`)
	}))
	defer server.Close()

	provider := NewSettingsProvider(client)
	settings, err := provider.Active()
	require.NoError(t, err)

	require.Len(t, settings, 1)
	assert.Equal(t, "S2", settings[0].Name)
}
