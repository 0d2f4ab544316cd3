package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

const sweepEvery = time.Minute

type boardModel struct {
	ctx  context.Context
	game *engine.Game

	width  int
	height int

	tasks    []engine.TaskRecord
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	tasks []engine.TaskRecord
	err   error
}

type resolvedMsg struct {
	log string
	err error
}

type sweepTickMsg struct{}

func newBoardModel(ctx context.Context, game *engine.Game) boardModel {
	return boardModel{
		ctx:     ctx,
		game:    game,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), sweepTick())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.game.OutstandingFiltered(m.ctx)
		return loadedMsg{tasks: tasks, err: err}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.game.CompleteTask(m.ctx, id)
		if err != nil {
			return resolvedMsg{err: err}
		}
		if out.Rejected {
			return resolvedMsg{log: out.Reason}
		}
		log := fmt.Sprintf("%q done: +%d xp, +%d gold", out.Title, out.XP, out.Gold)
		if out.LevelUp {
			log += fmt.Sprintf(" — level %d!", out.Level)
		}
		return resolvedMsg{log: log}
	}
}

func (m boardModel) failCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.game.FailTask(m.ctx, id, true)
		if err != nil {
			return resolvedMsg{err: err}
		}
		switch {
		case out.RestDay:
			return resolvedMsg{log: "Rest day. No damage."}
		case out.Shielded:
			return resolvedMsg{log: "Shielded."}
		case out.Died:
			return resolvedMsg{log: "You fall. The run ends."}
		default:
			return resolvedMsg{log: fmt.Sprintf("%q failed: -%d health", out.Title, out.Damage)}
		}
	}
}

func (m boardModel) meditateCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.game.Meditate(m.ctx)
		if err != nil {
			return resolvedMsg{err: err}
		}
		if out.Rejected {
			return resolvedMsg{log: out.Reason}
		}
		return resolvedMsg{log: out.Message}
	}
}

func sweepTick() tea.Cmd {
	return tea.Tick(sweepEvery, func(time.Time) tea.Msg { return sweepTickMsg{} })
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil

	case resolvedMsg:
		if msg.err != nil {
			m.lastLog = "Error: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()

	case sweepTickMsg:
		return m, tea.Batch(func() tea.Msg {
			if _, err := m.game.SweepDeadlines(m.ctx); err != nil {
				return resolvedMsg{err: err}
			}
			return resolvedMsg{log: "Deadline sweep done."}
		}, sweepTick())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
		case "enter", "d":
			if len(m.tasks) > 0 {
				return m, m.completeCmd(m.tasks[m.selected].ID)
			}
		case "f":
			if len(m.tasks) > 0 {
				return m, m.failCmd(m.tasks[m.selected].ID)
			}
		case "m":
			return m, m.meditateCmd()
		case "r":
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading…"
	}

	st := m.game.State()
	p := st.Player

	header := fmt.Sprintf("%s  Lv %d  %s %d/%d  %s %d  %s",
		ui.Title.Render("Sisyphus"),
		p.Level,
		ui.IconHeart, p.Health, p.MaxHealth,
		ui.IconGold, p.Gold,
		m.game.Modifier().Icon,
	)
	if m.game.Meditation().LockedDown() {
		header += "  " + ui.BadgeLockdown
	}

	body := ""
	if len(m.tasks) == 0 {
		body = ui.Muted.Render("Nothing outstanding. Add a quest with `sis add`.")
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s d%d (+%d/+%d)", ui.IconQuest, t.Meta.Title, t.Meta.Difficulty, t.Meta.XP, t.Meta.Gold)
		if t.Meta.Deadline != nil {
			line += ui.Warn.Render("  due " + t.Meta.Deadline.Format("01-02"))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		body += line + "\n"
	}

	footer := ui.Muted.Render("↑/↓ move · enter done · f fail · m meditate · r reload · q quit")
	log := ui.Muted.Render("· ") + m.lastLog

	return ui.Panel.Render(header) + "\n\n" + body + "\n" + log + "\n" + footer + "\n"
}
