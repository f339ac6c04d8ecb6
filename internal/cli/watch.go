package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/loader"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor API health and the portfolio snapshot",
		Long: `Watch polls the API health endpoint and shows the current portfolio
snapshot. Press r to refresh the snapshot and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Log lines would tear the full-screen view.
			quiet := log.New(io.Discard)

			client := api.New(c.cfg.Client(), api.WithLogger(quiet))
			monitor := loader.NewMonitor(client,
				loader.WithInterval(interval),
				loader.WithMonitorLogger(quiet))
			l := c.newLoader(ctx, client, false)

			m := newWatchModel(ctx, client.BaseURL(), monitor, l, interval)
			_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", loader.DefaultHealthInterval, "health check interval")

	return cmd
}

// =============================================================================
// watchModel - health and snapshot dashboard
// =============================================================================

type healthMsg struct {
	healthy bool
	at      time.Time
	manual  bool
}

type snapshotMsg struct {
	snap *portfolio.Snapshot
	src  loader.Source
	err  error
}

type tickMsg time.Time

// snapshotSource is the part of [loader.Loader] the dashboard needs.
type snapshotSource interface {
	LoadOrFallback(ctx context.Context) (*portfolio.Snapshot, loader.Source, error)
	Refresh(ctx context.Context) (*portfolio.Snapshot, error)
}

type watchModel struct {
	ctx      context.Context
	endpoint string
	monitor  *loader.Monitor
	loader   snapshotSource
	interval time.Duration

	healthy  bool
	checked  time.Time
	loading  bool
	snap     *portfolio.Snapshot
	src      loader.Source
	lastErr  string
	loadedAt time.Time
}

func newWatchModel(ctx context.Context, endpoint string, m *loader.Monitor, l snapshotSource, interval time.Duration) watchModel {
	return watchModel{
		ctx:      ctx,
		endpoint: endpoint,
		monitor:  m,
		loader:   l,
		interval: interval,
		healthy:  m.Healthy(),
		loading:  true,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(false), m.load(false))
}

// checkHealth probes the API. Only scheduled checks arm the next tick.
func (m watchModel) checkHealth(manual bool) tea.Cmd {
	return func() tea.Msg {
		healthy := m.monitor.Check(m.ctx)
		return healthMsg{healthy: healthy, at: m.monitor.LastChecked(), manual: manual}
	}
}

func (m watchModel) load(force bool) tea.Cmd {
	return func() tea.Msg {
		if force {
			snap, err := m.loader.Refresh(m.ctx)
			return snapshotMsg{snap: snap, src: loader.SourceNetwork, err: err}
		}
		snap, src, err := m.loader.LoadOrFallback(m.ctx)
		return snapshotMsg{snap: snap, src: src, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.load(true)
		case "h":
			return m, m.checkHealth(true)
		}
	case healthMsg:
		m.healthy = msg.healthy
		m.checked = msg.at
		if msg.manual {
			return m, nil
		}
		return m, tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
	case tickMsg:
		return m, m.checkHealth(false)
	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = api.Message(msg.err)
		} else {
			m.lastErr = ""
		}
		if msg.snap != nil {
			m.snap = msg.snap
			m.src = msg.src
			m.loadedAt = time.Now()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Portfolio API"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.endpoint))
	b.WriteString("\n\n")

	status := StyleSuccess.Render("● healthy")
	if !m.healthy {
		status = StyleError.Render("● unreachable")
	}
	b.WriteString(status)
	if !m.checked.IsZero() {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  checked %s", m.checked.Format("15:04:05"))))
	}
	b.WriteString("\n\n")

	switch {
	case m.snap == nil && m.loading:
		b.WriteString(StyleDim.Render("Loading snapshot..."))
	case m.snap == nil:
		b.WriteString(StyleDim.Render("No snapshot"))
	default:
		c := m.snap.Counts()
		b.WriteString(StyleValue.Render(m.snap.Portfolio.Personal.Name))
		b.WriteString("\n")
		rows := [][]string{
			{"skills", fmt.Sprint(c.Skills)},
			{"experiences", fmt.Sprint(c.Experiences)},
			{"projects", fmt.Sprint(c.Projects)},
			{"achievements", fmt.Sprint(c.Achievements)},
			{"publications", fmt.Sprint(c.Publications)},
		}
		b.WriteString(renderTable([]string{"Section", "Items"}, rows))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("source ") + sourceStyle(m.src).Render(m.src.String()))
		if m.loading {
			b.WriteString(StyleDim.Render("  refreshing..."))
		}
	}
	if m.lastErr != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.lastErr))
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("r refresh  h check now  q quit"))
	return b.String()
}
