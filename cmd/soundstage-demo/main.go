package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/soundstage/audio"
	"github.com/lixenwraith/soundstage/config"
	"github.com/lixenwraith/soundstage/core"
	"github.com/lixenwraith/soundstage/engine"
	"github.com/lixenwraith/soundstage/event"
	"github.com/lixenwraith/soundstage/input"
	"github.com/lixenwraith/soundstage/levels"
	"github.com/lixenwraith/soundstage/service"
	"github.com/lixenwraith/soundstage/status"
)

func main() {
	// Panic recovery: restore the terminal before printing the trace
	var screen tcell.Screen
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "soundstage-demo crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	reg := status.NewRegistry()
	game := engine.NewGame(nil, reg)
	queue := event.NewQueue()

	// Announcements go to a scrolling log on screen; audio plays a move
	// earcon alongside each one
	display := newDisplay(screen)

	audioSvc := audio.NewService(cfg.MasterVolume)
	runner := service.NewRunner()
	for _, svc := range []service.Service{audioSvc, input.NewDriver(screen, queue, cfg.MouseEnabled)} {
		if err := runner.Add(svc); err != nil {
			screen.Fini()
			log.Fatalf("services: %v", err)
		}
	}
	if err := runner.StartAll(); err != nil {
		screen.Fini()
		log.Fatalf("services: %v", err)
	}
	defer runner.StopAll()

	if cfg.AudioEnabled {
		audioSvc.Player().Play(audio.EarconStartup)
	}
	announce := func(text string) {
		display.log(text)
		if cfg.AudioEnabled {
			audioSvc.Player().Play(audio.EarconMove)
		}
	}

	game.Push(buildMainMenu(game, audioSvc, announce, cfg))

	// Redraw after every pump by ticking a detached task
	refresher := engine.NewTask(game.Clock(),
		func() time.Duration { return 50 * time.Millisecond },
		func(time.Duration) { display.render() },
	)
	refresher.Start(true)

	if err := game.Run(context.Background(), queue, cfg.TickInterval); err != nil && err != context.Canceled {
		screen.Fini()
		log.Fatalf("dispatch: %v", err)
	}
}

func buildMainMenu(game *engine.Game, audioSvc *audio.Service, announce levels.Announcer, cfg config.Config) *levels.Menu {
	menu := levels.NewMenu(game, "Soundstage demo", false, announce)

	menu.AddItem("Play a tone", func() (*engine.Suspension, error) {
		audioSvc.Player().Play(audio.EarconActivate)
		return nil, nil
	})

	// Two-phase item: low tone on press, high tone when enter is released
	menu.AddItem("Press and release tones", func() (*engine.Suspension, error) {
		audioSvc.Player().Play(audio.EarconDismiss)
		return engine.Suspend(func() error {
			audioSvc.Player().Play(audio.EarconActivate)
			return nil
		}), nil
	})

	menu.AddItem("Enter your name", func() (*engine.Suspension, error) {
		editor := levels.NewEditor(game, "", announce)
		editor.Submit = func(text string) error {
			if popErr := game.Pop(); popErr != nil {
				return popErr
			}
			announce("Hello, " + text)
			return nil
		}
		game.Push(editor)
		return nil, nil
	})

	menu.AddItem("Quit", func() (*engine.Suspension, error) {
		game.Quit()
		return nil, nil
	})

	// Repeat example: space re-announces the selection, rate-limited
	menu.Action("Repeat selection", core.KeyTrigger(core.KeySpace, core.ModNone), func() (*engine.Suspension, error) {
		menu.ShowSelection()
		return nil, nil
	}, engine.WithInterval(cfg.RepeatInterval))

	return menu
}

// display is a minimal announcement log over a tcell screen
type display struct {
	screen tcell.Screen
	lines  []string
}

func newDisplay(screen tcell.Screen) *display {
	return &display{screen: screen}
}

func (d *display) log(text string) {
	const maxLines = 16
	if len(d.lines) >= maxLines {
		copy(d.lines, d.lines[1:])
		d.lines = d.lines[:maxLines-1]
	}
	d.lines = append(d.lines, text)
}

func (d *display) render() {
	d.screen.Clear()
	style := tcell.StyleDefault
	d.put(0, 0, "soundstage demo - arrows navigate, enter activates, escape backs out", style.Bold(true))
	for i, line := range d.lines {
		d.put(0, i+2, line, style)
	}
	d.screen.Show()
}

func (d *display) put(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		d.screen.SetContent(x+i, y, ch, nil, style)
	}
}
