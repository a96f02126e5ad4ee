// woolterm renders a local woolball scene in the terminal. The mouse drags
// the anchor, space pushes the ball, r resets and q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"woolball/config"
	"woolball/game"
)

const (
	framePeriod = time.Second / 60
	hudRows     = 1
	pushForce   = 10.0
)

var (
	stringStyle = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	ballStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	anchorStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

type app struct {
	screen tcell.Screen
	scene  *game.Scene
	hero   *game.PowerQueue
	view   view
	anchor mgl64.Vec3
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "woolterm:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	hero := &game.PowerQueue{}
	scene, err := game.NewScene(cfg.Simulation, hero)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	a := &app{screen: screen, scene: scene, hero: hero}
	a.resize()
	a.reset()
	a.loop()
	return nil
}

func (a *app) resize() {
	w, h := a.screen.Size()
	a.view = newView(w, h, a.scene.Chain.Config().FloorHeight)
}

func (a *app) reset() {
	w, h := a.screen.Size()
	a.anchor = a.view.toWorld(w/2, h/3)
	a.scene.Chain.Reset(a.anchor)
}

func (a *app) loop() {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case <-ticker.C:
			a.scene.Step(a.anchor)
			a.draw()
		}
	}
}

func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.hero.Push(mgl64.Vec2{pushForce, 0})
			case 'r':
				a.reset()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.anchor = a.view.toWorld(x, y)
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

func (a *app) draw() {
	a.screen.Clear()
	w, _ := a.screen.Size()

	for x := 0; x < w; x++ {
		a.screen.SetContent(x, a.view.groundRow+1, '─', nil, floorStyle)
	}

	verts := a.scene.Chain.Vertices()
	for i := 1; i < len(verts); i++ {
		x0, y0, ok0 := a.view.toScreen(verts[i-1])
		x1, y1, ok1 := a.view.toScreen(verts[i])
		if !ok0 || !ok1 {
			continue
		}
		line(x0, y0, x1, y1, func(x, y int) { a.put(x, y, '•', stringStyle) })
	}

	if ax, ay, ok := a.view.toScreen(verts[0]); ok {
		a.put(ax, ay, '+', anchorStyle)
	}

	body := a.scene.Chain.Body()
	if bx, by, ok := a.view.toScreen(body.Position); ok {
		a.put(bx, by, ballGlyph(body.Rotation), ballStyle)
	}

	hud := fmt.Sprintf("tick %d  rot %+.2f  [mouse] drag  [space] push  [r] reset  [q] quit", a.scene.Tick, body.Rotation)
	for i, r := range hud {
		a.put(i, 0, r, hudStyle)
	}

	a.screen.Show()
}

func (a *app) put(x, y int, r rune, style tcell.Style) {
	w, h := a.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	a.screen.SetContent(x, y, r, nil, style)
}
