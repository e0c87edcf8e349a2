package etims

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	noticeSuccessStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#04B575")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	noticeErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FF4444")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)
)

// TerminalNotifier prints dispatch outcomes to stdout.
type TerminalNotifier struct{}

func (TerminalNotifier) Info(msg string) {
	fmt.Println(noticeSuccessStyle.Render("✓") + " " + msg)
}

func (TerminalNotifier) Error(msg string) {
	fmt.Println(noticeErrorStyle.Render("✗") + " " + msg)
}

// newDispatcher wires the standard CLI dispatcher: this client as the
// gateway, the TUI picker as the prompt, terminal notices, file logging.
func (c *Client) newDispatcher() *Dispatcher {
	return NewDispatcher(c, &TUIPrompter{Brand: c.Config.Brand}, c.Notify, NewLogger())
}

// dispatchAction fetches the active settings and routes req through the
// dispatcher. Shared by every document-type command.
func (c *Client) dispatchAction(req ActionRequest) error {
	settings, err := c.Settings.Active()
	if err != nil {
		return err
	}

	if len(settings) == 0 {
		c.Notify.Error(fmt.Sprintf("No active eTIMS settings configured. Create a %s record first.", SettingsDoctype))
		return ErrNoSettings
	}

	result, err := c.newDispatcher().Dispatch(settings, req)
	if err != nil {
		return err
	}
	if result.Cancelled {
		return nil
	}

	fmt.Printf("  Settings: %s%s%s\n", Cyan, result.Settings.Label(), Reset)
	return nil
}
