package viz

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
)

type TickMsg time.Time

// Model drives an app whose sink and surface is frame.
type Model struct {
	app      *app.App
	frame    *Frame
	interval time.Duration
	buttons  bool
}

func NewModel(a *app.App, frame *Frame, fps int) Model {
	fps = min(max(fps, 1), 240)
	return Model{app: a, frame: frame, interval: time.Second / time.Duration(fps)}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and advances the engine one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.app.HandleKey(msg.String())

	case tea.WindowSizeMsg:
		m.frame.Resize(msg.Width, msg.Height)
		m.app.Engine().Resize(buffer.Size{Width: msg.Width, Height: msg.Height})

	case tea.MouseMsg:
		p := buffer.Point{X: msg.X, Y: msg.Y}
		m.app.Engine().MouseMove(p)
		left := msg.Button == tea.MouseButtonLeft
		switch msg.Action {
		case tea.MouseActionPress:
			if left && !m.buttons {
				m.app.Engine().MouseClick(p)
			}
			m.buttons = left
		case tea.MouseActionRelease:
			m.buttons = false
		}

	case tea.FocusMsg:
	case tea.BlurMsg:
		m.app.Engine().MouseLeave()

	case TickMsg:
		// Tick logs its own failures.
		_ = m.app.Engine().Tick()
		if m.app.Done() {
			return m, tea.Quit
		}
		return m, m.tick()
	}

	if m.app.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	return m.frame.View()
}

// Run starts the app and blocks until the user quits or ctx ends.
func Run(ctx context.Context, a *app.App, frame *Frame, fps int, mouse bool) error {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx), tea.WithReportFocus()}
	if mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	if err := a.Start(); err != nil {
		return err
	}
	_, err := tea.NewProgram(NewModel(a, frame, fps), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
