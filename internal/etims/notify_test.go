package etims

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frappeStub routes resource reads and method calls like a Frappe server,
// counting hits per endpoint kind.
type frappeStub struct {
	settingsJSON string
	resourceHits int
	methodHits   int
	lastMethod   string
}

func (s *frappeStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/resource/"):
			s.resourceHits++
			fmt.Fprint(w, s.settingsJSON)
		case strings.HasPrefix(r.URL.Path, "/api/method/"):
			s.methodHits++
			s.lastMethod = strings.TrimPrefix(r.URL.Path, "/api/method/")
			fmt.Fprint(w, `{"message":"queued"}`)
		default:
			http.NotFound(w, r)
		}
	})
}

func TestDispatchActionFetchesSettingsOncePerRun(t *testing.T) {
	stub := &frappeStub{settingsJSON: `{"data":[{"name":"S1","company":"Acme"}]}`}
	client, server := newTestClient(stub.handler())
	defer server.Close()
	client.Notify = &stubNotifier{}

	require.NoError(t, client.dispatchAction(RegisterItemAction("SKU-0042")))
	require.NoError(t, client.dispatchAction(RegisterItemAction("SKU-0043")))

	assert.Equal(t, 1, stub.resourceHits, "second dispatch reuses the cached settings list")
	assert.Equal(t, 2, stub.methodHits)
}

func TestDispatchActionNoSettingsNotice(t *testing.T) {
	stub := &frappeStub{settingsJSON: `{"data":[]}`}
	client, server := newTestClient(stub.handler())
	defer server.Close()
	notify := &stubNotifier{}
	client.Notify = notify

	err := client.dispatchAction(RegisterCustomerAction("Acme Corp"))
	require.ErrorIs(t, err, ErrNoSettings)

	require.Len(t, notify.errors, 1)
	assert.Contains(t, notify.errors[0], "No active eTIMS settings configured")
	assert.Equal(t, 0, stub.methodHits, "no remote call without settings")
}

func TestCmdCustomerSubmitAllWithoutSelection(t *testing.T) {
	stub := &frappeStub{settingsJSON: `{"data":[{"name":"S1","company":"Acme"}]}`}
	client, server := newTestClient(stub.handler())
	defer server.Close()
	notify := &stubNotifier{}
	client.Notify = notify

	err := client.CmdCustomer([]string{"submit-all"})
	require.ErrorIs(t, err, ErrEmptySelection)

	assert.Equal(t, []string{"Please select customers to submit"}, notify.errors,
		"exactly one visible notification per dispatch")
	assert.Empty(t, notify.infos)
	assert.Equal(t, 0, stub.methodHits)
}

func TestCmdCustomerRoutesToGateway(t *testing.T) {
	stub := &frappeStub{settingsJSON: `{"data":[{"name":"S1","company":"Acme"}]}`}
	client, server := newTestClient(stub.handler())
	defer server.Close()
	notify := &stubNotifier{}
	client.Notify = notify

	require.NoError(t, client.CmdCustomer([]string{"register", "Acme Corp"}))

	assert.Equal(t, 1, stub.methodHits)
	assert.Equal(t, "etims_integration.apis.apis.send_branch_customer_details", stub.lastMethod)
	require.Len(t, notify.infos, 1)
	assert.Contains(t, notify.infos[0], "Acme Corp")
}

func TestCmdCustomerUnknownSubcommand(t *testing.T) {
	client, server := newTestClient(http.NotFoundHandler())
	defer server.Close()

	err := client.CmdCustomer([]string{"frobnicate"})
	require.Error(t, err)
	assert.False(t, AlreadyNotified(err), "routing errors are printed by main")
}
