package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"curseforge-client/curseforge"
	"curseforge-client/db"
	"curseforge-client/logger"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recorded mods and install updates interactively",
	Long:  `Launch an interactive TUI that lists recorded mods with their update status.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrapInstance()
		if err != nil {
			return err
		}
		m := newBrowseModel(cmd.Context(), a)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

const (
	statusUpToDate        = "up-to-date"
	statusUpdateAvailable = "update-available"
)

// ModInfo is one row of the browse view.
type ModInfo struct {
	Name          string
	ModID         int
	InstalledFile string
	AvailableFile string
	ReleaseType   curseforge.FileReleaseType
	Status        string
	Selected      bool
	Selectable    bool // only rows with an update can be selected

	plan *updatePlan
}

// Model is the state of the browse TUI.
type Model struct {
	ctx           context.Context
	app           *app
	spinner       spinner.Model
	mods          []ModInfo
	selectedIndex int
	loading       bool
	downloading   bool
	error         string
	message       string
	width         int
	height        int
}

func newBrowseModel(ctx context.Context, a *app) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	return Model{ctx: ctx, app: a, spinner: s, loading: true, width: 80, height: 24}
}

// Message types
type modsLoadedMsg struct {
	mods []ModInfo
}

type errorMsg string

type downloadCompleteMsg struct {
	message string
}

type clearMessageMsg struct{}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadMods(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		if !m.loading && !m.downloading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case modsLoadedMsg:
		m.handleModsLoaded(msg)
	case errorMsg:
		m.error = string(msg)
		m.loading = false
		m.downloading = false
	case downloadCompleteMsg:
		m.downloading = false
		m.loading = true
		m.message = msg.message
		return m, tea.Batch(
			m.loadMods(),
			m.spinner.Tick,
			tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearMessageMsg{} }),
		)
	case clearMessageMsg:
		m.message = ""
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.mods)-1 {
			m.selectedIndex++
		}
	case " ":
		if len(m.mods) > 0 && m.mods[m.selectedIndex].Selectable {
			m.mods[m.selectedIndex].Selected = !m.mods[m.selectedIndex].Selected
		}
	case "ctrl+d":
		if !m.downloading && !m.loading {
			m.downloading = true
			return m, tea.Batch(m.downloadSelectedMods(), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m *Model) handleModsLoaded(msg modsLoadedMsg) {
	m.mods = msg.mods
	m.loading = false
	sort.Slice(m.mods, func(i, j int) bool {
		return strings.ToLower(m.mods[i].Name) < strings.ToLower(m.mods[j].Name)
	})
	if m.selectedIndex >= len(m.mods) {
		m.selectedIndex = 0
	}
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " Checking recorded mods...\n"
	}
	if m.downloading {
		return m.spinner.View() + " Downloading selected mods...\n"
	}
	if m.error != "" {
		return fmt.Sprintf("Error: %s\n", m.error)
	}
	if len(m.mods) == 0 {
		return "No recorded mods found. Run 'curseforge-client scan' first!\n"
	}

	var b strings.Builder
	b.WriteString(renderHeader() + "\n")
	for i, mod := range m.mods {
		b.WriteString(m.renderModRow(i, mod) + "\n")
	}
	b.WriteString("\n" + renderFooter())
	if m.message != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.message))
	}
	return b.String()
}

func renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	return headerStyle.Render(fmt.Sprintf("%-32s %-30s %-30s %-16s", "Mod Name", "Installed", "Available", "Status"))
}

func renderFooter() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	return footerStyle.Render("↑/k: up  ↓/j: down  space: select  ctrl+d: download  q: quit")
}

func (m Model) renderModRow(index int, mod ModInfo) string {
	statusColor := "10"
	if mod.Status == statusUpdateAvailable {
		statusColor = "11"
	}

	rowStyle := lipgloss.NewStyle().Padding(0, 1)
	if index == m.selectedIndex {
		rowStyle = rowStyle.Background(lipgloss.Color("8")).Bold(true)
	}

	indicator := " "
	if mod.Selected {
		indicator = "✓"
	} else if !mod.Selectable {
		indicator = "-"
	}

	status := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(fmt.Sprintf("%-16s", mod.Status))
	row := fmt.Sprintf("%s %-31s %-30s %-30s %s",
		indicator,
		truncate(mod.Name, 29),
		truncate(mod.InstalledFile, 28),
		truncate(mod.AvailableFile, 28),
		status,
	)
	return rowStyle.Render(row)
}

// loadMods checks every recorded mod for updates.
func (m Model) loadMods() tea.Cmd {
	return func() tea.Msg {
		installed, err := db.ListInstalled(m.app.db)
		if err != nil {
			logger.Log.Errorw("Failed to list installed mods", zap.Error(err))
			return errorMsg(fmt.Sprintf("Failed to list installed mods: %v", err))
		}
		plans, _ := planUpdates(m.ctx, m.app, installed, false, nil)
		return modsLoadedMsg{mods: buildModInfos(installed, plans)}
	}
}

// buildModInfos joins the installed records with the update plans.
func buildModInfos(installed []db.InstalledMod, plans []updatePlan) []ModInfo {
	byMod := make(map[int]*updatePlan, len(plans))
	for i := range plans {
		byMod[plans[i].installed.ModID] = &plans[i]
	}

	infos := make([]ModInfo, 0, len(installed))
	for _, mod := range installed {
		info := ModInfo{
			Name:          mod.Name,
			ModID:         mod.ModID,
			InstalledFile: mod.FileName,
			AvailableFile: mod.FileName,
			Status:        statusUpToDate,
		}
		if p, ok := byMod[mod.ModID]; ok {
			info.AvailableFile = p.file.FileName
			info.ReleaseType = p.file.ReleaseType
			info.Status = statusUpdateAvailable
			info.Selectable = true
			info.plan = p
		}
		infos = append(infos, info)
	}
	return infos
}

func (m Model) downloadSelectedMods() tea.Cmd {
	return func() tea.Msg {
		var selected []ModInfo
		for _, mod := range m.mods {
			if mod.Selected && mod.plan != nil {
				selected = append(selected, mod)
			}
		}
		if len(selected) == 0 {
			return downloadCompleteMsg{message: "No mods selected for download"}
		}

		var dbMu sync.Mutex
		successCount := 0
		for _, mod := range selected {
			if err := applyUpdate(m.ctx, m.app, *mod.plan, &dbMu, nil); err != nil {
				logger.Log.Warnw("Failed to download mod", zap.String("mod", mod.Name), zap.Error(err))
				continue
			}
			successCount++
		}
		return downloadCompleteMsg{message: fmt.Sprintf("Downloaded %d/%d selected mods", successCount, len(selected))}
	}
}
