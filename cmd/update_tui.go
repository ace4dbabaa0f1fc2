package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"curseforge-client/ui"
)

// updateDoneMsg is sent once runUpdate has returned and the event channel is closed.
type updateDoneMsg struct{}

// UpdateModel shows the progress of an update run.
type UpdateModel struct {
	spinner spinner.Model
	events  chan updateEvent
	start   func()

	status      string
	downloading []string
	completed   []string
	errors      []string
	summary     string
	done        bool
	checked     int
}

func initialUpdateModel(ctx context.Context, a *app, opts updateOptions) UpdateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F16436"))

	events := make(chan updateEvent, 100)
	return UpdateModel{
		spinner: s,
		events:  events,
		status:  "Initializing...",
		start: func() {
			defer close(events)
			if _, err := runUpdate(ctx, a, opts, events); err != nil {
				events <- updateEvent{Kind: "error", ModName: "update", Message: err.Error()}
			}
		},
	}
}

func (m UpdateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startUpdate(), m.waitForActivity())
}

func (m UpdateModel) startUpdate() tea.Cmd {
	return func() tea.Msg {
		if m.start != nil {
			go m.start()
		}
		return nil
	}
}

func (m UpdateModel) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return updateDoneMsg{}
		}
		return ev
	}
}

func (m UpdateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" || m.done {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case updateDoneMsg:
		m.done = true
		m.status = "Finished"
		return m, tea.Quit

	case updateEvent:
		m.apply(msg)
		return m, m.waitForActivity()
	}
	return m, nil
}

// apply folds one progress event into the view state.
func (m *UpdateModel) apply(ev updateEvent) {
	label := fmt.Sprintf("%s %s", ev.ModName, ev.FileName)
	switch ev.Kind {
	case "status":
		m.status = ev.Message
	case "check":
		m.checked++
		m.status = fmt.Sprintf("Checking %s...", ev.ModName)
	case "download_start":
		m.downloading = append(m.downloading, label)
	case "download_success":
		m.downloading = remove(m.downloading, label)
		m.completed = append(m.completed, fmt.Sprintf("%s %s", ui.ReleaseBadge(ev.ReleaseType), label))
	case "error":
		m.errors = append(m.errors, fmt.Sprintf("%s: %s", ev.ModName, ev.Message))
	case "summary":
		m.summary = ev.Message
	}
}

func remove(items []string, item string) []string {
	for i, v := range items {
		if v == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func (m UpdateModel) View() string {
	symbol := m.spinner.View()
	if m.done {
		symbol = ui.Success.Render("✓")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n %s %s\n\n", symbol, m.status)

	section := func(title string, style lipgloss.Style, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(style.Render(title) + "\n")
		for _, item := range items {
			fmt.Fprintf(&b, "  • %s\n", item)
		}
		b.WriteString("\n")
	}
	section("Downloading:", lipgloss.NewStyle().Bold(true), m.downloading)
	section("Errors:", ui.Failure, m.errors)

	completed := m.completed
	if len(completed) > 5 && !m.done {
		completed = completed[len(completed)-5:]
	}
	section("Completed:", ui.Success, completed)

	if m.done && m.summary != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.summary) + "\n")
	}
	return b.String()
}
