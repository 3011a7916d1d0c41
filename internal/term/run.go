package term

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
)

// Run animates a until the user quits or ctx ends. The app must have been
// built with scr as its sink and surface. Input is read on its own
// goroutine and handed to the engine loop as closures, so the app is only
// touched from the loop.
func Run(ctx context.Context, scr *Screen, a *app.App, fps int) error {
	a.Engine().OnAfterRender(func(engine.FrameInfo) { scr.Show() })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inbox := make(chan func(), 64)
	go poll(ctx, scr.s, a, inbox)

	if err := a.Start(); err != nil {
		return err
	}
	err := a.Engine().Run(ctx, fps, inbox)
	if a.Done() {
		return nil
	}
	return err
}

func poll(ctx context.Context, s tcell.Screen, a *app.App, inbox chan<- func()) {
	var in input
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		fn := in.translate(ev, a)
		if fn == nil {
			continue
		}
		select {
		case inbox <- fn:
		case <-ctx.Done():
			return
		}
	}
}

// input tracks button state across mouse events to turn presses into clicks.
type input struct {
	buttons tcell.ButtonMask
}

func (in *input) translate(ev tcell.Event, a *app.App) func() {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key := KeyName(ev)
		if key == "" {
			return nil
		}
		return func() { a.HandleKey(key) }

	case *tcell.EventResize:
		w, h := ev.Size()
		return func() {
			a.Engine().Resize(buffer.Size{Width: w, Height: h})
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		p := buffer.Point{X: x, Y: y}
		pressed := ev.Buttons()&tcell.Button1 != 0 && in.buttons&tcell.Button1 == 0
		in.buttons = ev.Buttons()
		return func() {
			a.Engine().MouseMove(p)
			if pressed {
				a.Engine().MouseClick(p)
			}
		}

	case *tcell.EventFocus:
		if ev.Focused {
			return nil
		}
		return func() { a.Engine().MouseLeave() }
	}
	return nil
}

var keyNames = map[tcell.Key]string{
	tcell.KeyRight:  "right",
	tcell.KeyLeft:   "left",
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyTab:    "tab",
	tcell.KeyEscape: "esc",
	tcell.KeyCtrlC:  "ctrl+c",
	tcell.KeyEnter:  "enter",
}

// KeyName renders a key event the way bubbletea names keys.
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return " "
		}
		return string(ev.Rune())
	}
	return keyNames[ev.Key()]
}
