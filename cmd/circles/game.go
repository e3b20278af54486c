package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/circles/circles"
	"github.com/plus3/circles/circles/render"
	"github.com/plus3/circles/config"
	"github.com/plus3/circles/ecs"
	"github.com/plus3/circles/ecs/debugui"
	debugui_ebiten "github.com/plus3/circles/ecs/debugui/ebiten"
)

// Game adapts a circles.World to ebiten.Game. One world tick runs per
// Update; with vsync on and TPS synced to the display, that is at most one
// tick per refresh.
type Game struct {
	world  *circles.World
	width  int
	height int

	renderScheduler *ecs.Scheduler
	renderSystem    *render.RenderSystem
	screen          *ecs.Singleton[render.Screen]

	uiScheduler *ecs.Scheduler
	imgui       *debugui_ebiten.ImguiBackend

	watcher *config.Watcher
	log     *zap.Logger
}

func newGame(cfg config.Config, world *circles.World, imgui *debugui_ebiten.ImguiBackend, log *zap.Logger) (*Game, error) {
	palette, err := paletteFrom(cfg.Render)
	if err != nil {
		return nil, err
	}

	storage := world.Storage()
	world.Startup()

	g := &Game{
		world:           world,
		width:           cfg.Window.Width,
		height:          cfg.Window.Height,
		renderScheduler: ecs.NewScheduler(storage),
		renderSystem:    &render.RenderSystem{Palette: palette},
		screen:          ecs.NewSingleton(storage, render.Screen{}),
		imgui:           imgui,
		log:             log,
	}
	g.renderScheduler.Register(g.renderSystem)

	if imgui != nil {
		debugui.Spawn(storage, world.Scheduler(), cfg.Inspector.HistoryFrames)
		g.uiScheduler = ecs.NewScheduler(storage)
		g.uiScheduler.Register(&debugui.ImguiSystem{})
	}

	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.imgui != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.imgui.Enabled = !g.imgui.Enabled
	}

	g.applyPaletteUpdates()

	dt := 1.0 / ebiten.ActualTPS()
	if ebiten.ActualTPS() == 0 {
		dt = 1.0 / 60.0
	}

	g.world.Step(dt)

	if g.imgui != nil && g.imgui.Enabled {
		g.imgui.BeginFrame()
		g.uiScheduler.Once(dt)
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if camera := g.world.Camera(); camera != nil {
		camera.ScreenW = screen.Bounds().Dx()
		camera.ScreenH = screen.Bounds().Dy()
	}

	g.screen.Get().Image = screen
	g.renderScheduler.Once(0)
	g.screen.Get().Image = nil

	g.imgui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(g.width, g.height)
	return g.width, g.height
}

// applyPaletteUpdates drains pending hot-reloaded render settings.
func (g *Game) applyPaletteUpdates() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case rc, ok := <-g.watcher.Updates:
			if !ok {
				g.watcher = nil
				return
			}
			palette, err := paletteFrom(rc)
			if err != nil {
				g.log.Warn("bad render config", zap.Error(err))
				continue
			}
			g.renderSystem.Palette = palette
		default:
			return
		}
	}
}

func paletteFrom(rc config.RenderConfig) (render.Palette, error) {
	circle, err := config.ParseColor(rc.CircleColor)
	if err != nil {
		return render.Palette{}, fmt.Errorf("circle colour: %w", err)
	}
	background, err := config.ParseColor(rc.BackgroundColor)
	if err != nil {
		return render.Palette{}, fmt.Errorf("background colour: %w", err)
	}
	return render.Palette{
		Circle:     circle,
		Background: background,
		Radius:     rc.CircleRadius,
	}, nil
}

// runWindow opens the window and blocks until it is closed.
func runWindow(cfg config.Config, configPath string, log *zap.Logger, opts ...circles.Option) error {
	var imgui *debugui_ebiten.ImguiBackend
	registry := ecs.NewComponentRegistry()
	if cfg.Inspector.Enabled {
		imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		debugui.RegisterComponents(registry)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)
	if cfg.Window.VSync {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}

	world := circles.NewWorld(append(opts, circles.WithRegistry(registry))...)
	game, err := newGame(cfg, world, imgui, log)
	if err != nil {
		return err
	}

	if configPath != "" {
		watcher, err := config.Watch(configPath, log)
		if err != nil {
			log.Warn("config hot reload disabled", zap.Error(err))
		} else {
			game.watcher = watcher
			defer func() { _ = watcher.Close() }()
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
