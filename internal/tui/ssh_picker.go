package tui

import (
	"context"
	"fmt"
	"strings"

	"vmops/internal/domain"
	"vmops/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const maxCellWidth = 24

// --- Messages ---

type instancesLoadedMsg struct {
	instances []domain.Instance
}

type instancesErrorMsg struct {
	err error
}

// --- SSH picker model ---

type sshPickerModel struct {
	provider domain.Provider

	instances []domain.Instance
	cursor    int

	loading bool
	spinner spinner.Model
	err     error

	selected *domain.Instance
	quitting bool
}

// RunSSHPicker lists running instances and returns the one the user
// picks. Returns ErrAborted when the user backs out.
func RunSSHPicker(provider domain.Provider) (*domain.Instance, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := sshPickerModel{
		provider: provider,
		loading:  true,
		spinner:  s,
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run instance picker: %w", err)
	}

	final := result.(sshPickerModel)
	if final.err != nil {
		return nil, final.err
	}
	if final.selected == nil {
		return nil, ErrAborted
	}
	return final.selected, nil
}

func (m sshPickerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchInstances(),
	)
}

func (m sshPickerModel) fetchInstances() tea.Cmd {
	return func() tea.Msg {
		instances, err := m.provider.ListInstances(context.Background())
		if err != nil {
			return instancesErrorMsg{err: err}
		}

		running := make([]domain.Instance, 0, len(instances))
		for _, inst := range instances {
			if inst.IsRunning() {
				running = append(running, inst)
			}
		}
		return instancesLoadedMsg{instances: running}
	}
}

func (m sshPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case instancesLoadedMsg:
		m.loading = false
		m.instances = msg.instances
		if m.cursor >= len(m.instances) {
			m.cursor = 0
		}
		return m, nil

	case instancesErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m sshPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.instances)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if len(m.instances) == 0 {
			return m, nil
		}
		inst := m.instances[m.cursor]
		m.selected = &inst
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m sshPickerModel) View() string {
	if m.quitting {
		return ""
	}

	if m.loading {
		return fmt.Sprintf("\n %s Fetching instances...\n", m.spinner.View())
	}

	if m.err != nil {
		return "\n " + styles.ErrorText.Render(m.err.Error()) + "\n"
	}

	if len(m.instances) == 0 {
		return "\n " + styles.MutedText.Render("No running instances.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n " + styles.Title.Render("Connect to instance") + "\n\n")

	for i, inst := range m.instances {
		name := ansi.Truncate(inst.Name, maxCellWidth, "…")
		line := fmt.Sprintf("%-*s  %-16s  %s", maxCellWidth, name, inst.Zone, styles.StatusIndicator(inst.Status))
		if i == m.cursor {
			b.WriteString(" " + styles.TableSelectedRow.Render("> "+line) + "\n")
		} else {
			b.WriteString(" " + styles.TableCell.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n " + styles.FormatKeyBinding("enter", "connect") +
		"  " + styles.FormatKeyBinding("j/k", "move") +
		"  " + styles.FormatKeyBinding("q", "quit") + "\n")

	return b.String()
}
