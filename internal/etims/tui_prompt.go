package etims

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt styles
var (
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	promptSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7D56F4")).
				Bold(true)

	promptHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// SettingsItem adapts a settings record for the picker list.
type SettingsItem struct {
	settings Settings
}

func (i SettingsItem) Title() string       { return i.settings.Label() }
func (i SettingsItem) Description() string { return i.settings.Name }
func (i SettingsItem) FilterValue() string { return i.settings.Label() }

type promptModel struct {
	picker    list.Model
	chosen    *Settings
	cancelled bool
}

func newPromptModel(title string, options []Settings) promptModel {
	items := make([]list.Item, len(options))
	for i, s := range options {
		items[i] = SettingsItem{settings: s}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = promptSelectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	picker := list.New(items, delegate, 60, len(options)*3+6)
	picker.Title = title
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.Styles.Title = promptTitleStyle

	// First option is the default selection.
	picker.Select(0)

	return promptModel{picker: picker}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.picker.SelectedItem().(SettingsItem); ok {
				s := item.settings
				m.chosen = &s
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.picker.SetSize(msg.Width-4, msg.Height-4)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	return m.picker.View() + "\n" +
		promptHelpStyle.Render("[Enter] Confirm    [Esc] Cancel")
}

// TUIPrompter asks the user to pick a settings record with a bubbletea
// picker. Implements Prompter.
type TUIPrompter struct {
	Brand string
}

// Select shows the picker with the first option pre-selected. Returns nil
// when the user cancels.
func (p *TUIPrompter) Select(options []Settings) (*Settings, error) {
	title := "Select eTIMS settings"
	if p.Brand != "" {
		title = p.Brand + " - Select settings"
	}

	prog := tea.NewProgram(newPromptModel(title, options))
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return nil, nil
	}
	return m.chosen, nil
}
