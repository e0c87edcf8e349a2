package etims

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCallSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/method/etims_integration.apis.apis.submit_all_customers", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"message":{"queued":true}}`)
	}))
	defer server.Close()

	result, err := client.Call("etims_integration.apis.apis.submit_all_customers", map[string]any{
		"settings_name": "S1",
		"docs":          []string{"CUST-0001"},
	})
	require.NoError(t, err)

	assert.Equal(t, "token test-key:test-secret", gotAuth)
	assert.Equal(t, "S1", gotBody["settings_name"])
	assert.NotNil(t, result["message"])
}

func TestClientCallServerException(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusExpectationFailed)
		fmt.Fprint(w, `{"exception":"frappe.exceptions.ValidationError: missing KRA PIN"}`)
	}))
	defer server.Close()

	_, err := client.Call("etims_integration.apis.apis.submit_all_customers", nil)
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusExpectationFailed, remoteErr.Status)
	assert.Contains(t, remoteErr.Detail, "ValidationError")
}

func TestClientCallExcTypeWithoutException(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"exc_type":"PermissionError","_server_messages":"[]"}`)
	}))
	defer server.Close()

	_, err := client.Call("etims_integration.apis.apis.submit_all_customers", nil)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Contains(t, remoteErr.Detail, "PermissionError")
}

func TestClientCallHTTPErrorStatus(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Not permitted"}`)
	}))
	defer server.Close()

	_, err := client.Call("etims_integration.apis.apis.submit_all_customers", nil)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusForbidden, remoteErr.Status)
}

func TestClientCallTransportFailure(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	_, err := client.Call("etims_integration.apis.apis.submit_all_customers", nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestClientCallNonJSONResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>proxy error</html>`)
	}))
	defer server.Close()

	_, err := client.Call("etims_integration.apis.apis.submit_all_customers", nil)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Contains(t, remoteErr.Detail, "proxy error")
}

func TestClientRequestCookieOnlyInInternetMode(t *testing.T) {
	var cookies []*http.Cookie
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies = r.Cookies()
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()
	client.Config.NginxCookie = "secret-cookie"
	client.Config.NginxCookieName = "auth_cookie"

	_, err := client.Request("GET", "KRA%20eTims%20Settings", nil)
	require.NoError(t, err)
	assert.Empty(t, cookies, "vpn mode skips the proxy cookie")

	client.Mode = "internet"
	_, err = client.Request("GET", "KRA%20eTims%20Settings", nil)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_cookie", cookies[0].Name)
	assert.Equal(t, "secret-cookie", cookies[0].Value)
}

func TestCmdConfigShortAPIKey(t *testing.T) {
	client := NewClient(&Config{
		ETIMSURL:       "https://erp.example.com",
		APIKey:         "abc",
		APISecret:      "shh",
		UnknownCompany: "Unknown",
	})

	require.NoError(t, client.CmdConfig())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup")
}

func TestLoadConfigParsesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `# comment
ETIMS_URL=https://erp.example.com
ETIMS_API_KEY="abc123"
ETIMS_API_SECRET='shh'
ETIMS_VPN=http://10.0.0.5:8000
ETIMS_UNKNOWN_COMPANY=Unassigned

not-a-pair
`
	require.NoError(t, os.WriteFile(".etims-config", []byte(content), 0o600))

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com", config.ETIMSURL)
	assert.Equal(t, "abc123", config.APIKey)
	assert.Equal(t, "shh", config.APISecret)
	assert.Equal(t, "http://10.0.0.5:8000", config.ETIMSVPN)
	assert.Equal(t, "Unassigned", config.UnknownCompany)
	assert.Equal(t, "auth_cookie", config.NginxCookieName)
	assert.Equal(t, "eTIMS CLI", config.Brand)
}
