package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/scenekit/internal/application/game"
	"github.com/younwookim/scenekit/internal/application/replay"
	"github.com/younwookim/scenekit/internal/application/scene"
	"github.com/younwookim/scenekit/internal/application/scene/playing"
	"github.com/younwookim/scenekit/internal/application/scene/title"
	"github.com/younwookim/scenekit/internal/application/system"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
	"github.com/younwookim/scenekit/internal/infrastructure/config"
	"github.com/younwookim/scenekit/internal/infrastructure/resource"
	"github.com/younwookim/scenekit/internal/infrastructure/telemetry"
)

//go:embed configs
var configFS embed.FS

// headlessFrames bounds a headless run that has neither -frames nor -replay.
const headlessFrames = 600

type options struct {
	configDir  string
	recordPath string
	replayPath string
	sceneName  string
	headless   bool
	frames     int
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Load configs from this directory instead of the embedded set")
	flag.StringVar(&opts.recordPath, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replayPath, "replay", "", "Play back input recorded with -record")
	flag.StringVar(&opts.sceneName, "scene", "", "Start in this scene instead of the configured one")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window")
	flag.IntVar(&opts.frames, "frames", 0, "Stop after this many updates (0 = unlimited)")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func run(opts options) error {
	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadEngine()
	if err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scripts, err := loader.LoadScripts()
	if err != nil {
		return err
	}
	layouts, err := loader.LoadLayouts(cfg.Scenes.Layouts)
	if err != nil {
		return err
	}

	store := newStore(!opts.headless)
	services := store.Services()

	// Input: live keyboard or a recording, optionally recorded again.
	var (
		src      input.Source = input.Fixed{}
		replayer *replay.Replayer
		recorder *replay.Recorder
	)
	initial := scene.Type(cfg.Scenes.Initial)
	if opts.sceneName != "" {
		initial = scene.Type(opts.sceneName)
	}
	if !opts.headless {
		src = system.NewInputSystem(system.DefaultKeyMap())
	}
	if opts.replayPath != "" {
		data, err := replay.LoadReplay(opts.replayPath)
		if err != nil {
			return err
		}
		replayer = replay.NewReplayer(*data)
		src = replayer
		if data.Scene != "" {
			initial = scene.Type(data.Scene)
		}
		logger.Info("replaying", zap.String("file", opts.replayPath), zap.Int("frames", replayer.TotalFrames()))
	}
	if opts.recordPath != "" {
		recorder = replay.NewRecorder(src, string(initial), time.Now())
		src = recorder
	}
	latch := system.NewLatch(src)

	metrics := telemetry.NewMetrics()
	objects := entity.NewManager(
		entity.WithLogger(logger.Named("objects")),
		entity.WithObserver(entity.Observers{telemetry.NewLogObserver(logger), metrics}),
	)
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Address, logger); err != nil {
				logger.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	kinds := system.DefaultKinds(system.Env{
		Services: services,
		Input:    latch,
		Scripts:  scripts,
		Log:      logger.Named("script"),
	})
	for name, layout := range layouts {
		if err := system.ValidateLayout(layout, kinds); err != nil {
			return fmt.Errorf("layout %s: %w", name, err)
		}
	}

	factory := scene.NewFactory()
	scenes := scene.NewManager(factory, scene.WithLogger(logger.Named("scene")), scene.WithObjects(objects))

	var g *game.Game
	screenW, screenH := cfg.Display.ScreenWidth, cfg.Display.ScreenHeight
	factory.Register(title.Type, title.Constructor(title.Deps{
		Director: scenes,
		Input:    latch,
		Services: services,
		Next:     playing.Type,
		Quit:     func() { g.Quit() },
		Layout:   layouts["title"],
		Kinds:    kinds,
		ScreenW:  screenW,
		ScreenH:  screenH,
		Log:      logger,
	}))
	factory.Register(playing.Type, playing.Constructor(playing.Deps{
		Director: scenes,
		Input:    latch,
		Services: services,
		Back:     title.Type,
		Layout:   layouts["arena"],
		Kinds:    kinds,
		Scripts:  scripts,
		ScreenW:  screenW,
		ScreenH:  screenH,
		Log:      logger,
	}))
	for name, layout := range layouts {
		if !factory.Register(scene.Type(name), scene.LayoutConstructor(layout, kinds)) {
			logger.Debug("layout already bound to a scene", zap.String("layout", name))
		}
	}
	if !factory.Has(initial) {
		return fmt.Errorf("unknown initial scene %q (have %v)", initial, factory.Types())
	}

	frames := opts.frames
	if frames <= 0 && replayer != nil {
		frames = replayer.TotalFrames()
	}
	if frames <= 0 && opts.headless {
		frames = headlessFrames
	}

	g = game.New(scenes, initial, screenW, screenH,
		game.WithFade(cfg.Scenes.FadeFrames),
		game.WithInput(latch),
		game.WithMetrics(metrics),
		game.WithFrameLimit(frames),
	)
	g.SetDT(cfg.Display.DT())

	logger.Info("starting",
		zap.String("scene", string(initial)),
		zap.Bool("headless", opts.headless),
		zap.Int("frames", frames))

	if opts.headless {
		err = runHeadless(ctx, g)
	} else {
		// Set up ebiten
		ebiten.SetWindowSize(screenW*cfg.Display.Scale, screenH*cfg.Display.Scale)
		ebiten.SetWindowTitle(cfg.Display.Title)
		ebiten.SetTPS(cfg.Display.TPS)
		err = ebiten.RunGame(g)
	}
	scenes.Dispose()

	if recorder != nil {
		if saveErr := recorder.Save(opts.recordPath); saveErr != nil {
			logger.Error("failed to save recording", zap.Error(saveErr))
		} else {
			logger.Info("recording saved", zap.String("file", opts.recordPath), zap.Int("frames", g.Frames()))
		}
	}
	logger.Info("stopped", zap.Int("frames", g.Frames()), zap.Int("objects", objects.Len()))
	return err
}

// runHeadless steps the game without a window until it terminates or ctx is
// cancelled.
func runHeadless(ctx context.Context, g *game.Game) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := g.Step(nil); err != nil {
			if errors.Is(err, ebiten.Termination) {
				return nil
			}
			return err
		}
	}
}

// newStore registers the built-in materials and, when a window will exist,
// solid placeholder images.
func newStore(withImages bool) *resource.Store {
	store := resource.NewStore()
	store.RegisterMaterial("ground", entity.Material{Tint: color.RGBA{180, 180, 200, 255}})
	store.RegisterMaterial("ui", entity.Material{
		Tint:  color.RGBA{255, 255, 255, 255},
		Blend: ebiten.BlendSourceOver,
	})
	if withImages {
		store.RegisterSolid("bullet", 3, 6, color.RGBA{255, 200, 100, 255})
	}
	return store
}
