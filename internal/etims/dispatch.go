package etims

import (
	"errors"
	"fmt"
	"log/slog"
)

// SettingsPlaceholder marks an argument value that must be replaced with the
// resolved settings record name before the remote call is made.
const SettingsPlaceholder = "__etims_settings__"

// Settings is one eTIMS integration profile (a "KRA eTims Settings" record).
type Settings struct {
	Name    string
	Company string
}

// Label renders the settings record the way selection prompts display it.
func (s Settings) Label() string {
	return fmt.Sprintf("%s (%s)", s.Company, s.Name)
}

// ActionRequest describes one user-triggered eTIMS operation.
type ActionRequest struct {
	Method      string         // dotted path of the whitelisted server method
	Args        map[string]any // argument template, may contain SettingsPlaceholder
	Success     string         // shown on success
	Docs        []string       // document name(s) the action applies to
	Bulk        bool           // Docs must be non-empty before dispatch
	EmptyNotice string         // shown when a bulk action has no documents
}

// DispatchResult is the outcome of one dispatch attempt.
type DispatchResult struct {
	Settings  Settings
	Payload   map[string]any
	Cancelled bool
}

// Gateway performs the remote procedure call. Failures are either a
// *TransportError (the server was never reached) or a *RemoteError (the
// server executed and reported a failure).
type Gateway interface {
	Call(method string, args map[string]any) (map[string]any, error)
}

// Prompter asks the user to pick one settings record. The first option is the
// default selection. A nil result with a nil error means the user cancelled.
type Prompter interface {
	Select(options []Settings) (*Settings, error)
}

// Notifier displays a message to the user. Fire-and-forget.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

var (
	// ErrNoSettings means no active settings record exists; the caller
	// should not have offered the action.
	ErrNoSettings = errors.New("no active etims settings")

	// ErrEmptySelection means a bulk action was dispatched with no documents.
	ErrEmptySelection = errors.New("no documents selected")

	// ErrActionFailed is the generic error returned after a remote failure.
	// The underlying cause is logged, never carried in the returned error.
	ErrActionFailed = errors.New("etims request failed")
)

// AlreadyNotified reports whether a notice for err has already been shown to
// the user. Callers should exit non-zero without printing a second message;
// one dispatch produces at most one visible notification.
func AlreadyNotified(err error) bool {
	return errors.Is(err, ErrNoSettings) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrActionFailed)
}

// genericFailureNotice is the only failure text end users ever see for remote
// errors; the cause goes to the log.
const genericFailureNotice = "The eTIMS request could not be completed. Please try again or contact your administrator."

// Dispatcher routes one user-triggered action through settings resolution to
// a single remote call, reporting the outcome through Notify.
type Dispatcher struct {
	Gateway Gateway
	Prompt  Prompter
	Notify  Notifier
	Log     *slog.Logger
}

// NewDispatcher wires a dispatcher with a discard logger when none is given.
func NewDispatcher(gw Gateway, prompt Prompter, notify Notifier, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = discardLogger()
	}
	return &Dispatcher{Gateway: gw, Prompt: prompt, Notify: notify, Log: log}
}

// Dispatch resolves exactly one settings record for req and executes it.
//
// With a single settings record no prompt is ever shown. With several, the
// prompt runs once; cancelling it ends the dispatch silently. At most one
// remote call and one user notification happen per invocation.
func (d *Dispatcher) Dispatch(available []Settings, req ActionRequest) (*DispatchResult, error) {
	if len(available) == 0 {
		return nil, ErrNoSettings
	}

	if req.Bulk && len(req.Docs) == 0 {
		notice := req.EmptyNotice
		if notice == "" {
			notice = "Please select documents first"
		}
		d.Notify.Error(notice)
		return nil, ErrEmptySelection
	}

	selected := available[0]
	if len(available) > 1 {
		choice, err := d.Prompt.Select(available)
		if err != nil {
			return nil, fmt.Errorf("settings prompt: %w", err)
		}
		if choice == nil {
			// User dismissed the prompt: no call, no notice, no log.
			return &DispatchResult{Cancelled: true}, nil
		}
		selected = *choice
	}

	payload, err := d.Gateway.Call(req.Method, resolveArgs(req, selected))
	if err != nil {
		d.Log.Error("etims call failed",
			"method", req.Method,
			"settings", selected.Name,
			"docs", req.Docs,
			"err", err,
		)
		d.Notify.Error(genericFailureNotice)
		return nil, ErrActionFailed
	}

	if req.Success != "" {
		d.Notify.Info(req.Success)
	}
	return &DispatchResult{Settings: selected, Payload: payload}, nil
}

// resolveArgs copies the argument template, substituting the resolved
// settings name for every placeholder value and attaching the document
// reference(s) when present.
func resolveArgs(req ActionRequest, selected Settings) map[string]any {
	args := make(map[string]any, len(req.Args)+1)
	for k, v := range req.Args {
		if v == SettingsPlaceholder {
			args[k] = selected.Name
			continue
		}
		args[k] = v
	}
	if len(req.Docs) == 1 && !req.Bulk {
		args["name"] = req.Docs[0]
	} else if len(req.Docs) > 0 {
		args["docs"] = req.Docs
	}
	return args
}
