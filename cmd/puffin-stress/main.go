package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/puffin/drawing"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/ecs/systems"
	"github.com/plus3/puffin/input"
	"github.com/plus3/puffin/logging"
	"github.com/plus3/puffin/scene"
	"github.com/plus3/puffin/tiles"
	"go.uber.org/zap"
)

const (
	worldWidth  = 1280
	worldHeight = 720
	tileSize    = 32
)

type options struct {
	duration       time.Duration
	entities       int
	solidRatio     float64
	gcPauseMetrics bool
	profile        string
	logLevel       string
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.entities, "entities", 500, "The number of moving entities to create.")
	flag.Float64Var(&opts.solidRatio, "solid", 0.25, "Fraction of entities with a solid collider.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.StringVar(&opts.profile, "profile", "", "Write a profile to the current directory: cpu, mem or allocs.")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level.")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run executes the stress test and writes the report to out. Deferred
// profile and logger shutdown always run before it returns.
func run(opts options, out io.Writer) error {
	logger, err := logging.New(opts.logLevel, "console")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "allocs":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profile)
	}

	logger.Info("starting puffin stress test", zap.Int("entities", opts.entities), zap.Duration("duration", opts.duration))

	// 1. Headless pipeline: recorded draw calls, scripted input
	recorder := drawing.NewRecorder()
	mouse := &input.StaticMouse{}
	keyboard := input.NewStaticKeyboard(input.DefaultBindings())
	keyboard.Press(input.ActionRight)

	director := scene.NewDirector(func(bus *ecs.EventBus) (scene.Pipeline, error) {
		surface := drawing.NewSurface(bus, recorder, drawing.Options{
			Width:       worldWidth,
			Height:      worldHeight,
			DefaultFont: "stress",
			Logger:      logger,
		})
		p := systems.Standard(bus, systems.StandardConfig{
			Mouse:    mouse,
			Keyboard: keyboard,
			Surface:  surface,
			Logger:   logger,
		})
		return scene.Pipeline{Systems: p.Systems(), Mouse: mouse, Keyboard: keyboard}, nil
	}, logger)
	defer director.Dispose()

	// 2. Populate the scene
	s := scene.New(scene.WithLogger(logger))
	populate(s, opts.entities, opts.solidRatio)
	if err := director.ShowScene(s); err != nil {
		return fmt.Errorf("show scene: %w", err)
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entities,
		SolidRatio:     opts.solidRatio,
		GCPauseMetrics: opts.gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", opts.duration))
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	var overlaps int
	ecs.Subscribe(s.Bus(), func(ecs.Overlapped) { overlaps++ })

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			elapsed := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := director.Update(elapsed); err != nil {
				return fmt.Errorf("update: %w", err)
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			recorder.Reset()
			drawStart := time.Now()
			if err := director.Draw(elapsed); err != nil {
				return fmt.Errorf("draw: %w", err)
			}
			report.DrawTime.Samples = append(report.DrawTime.Samples, time.Since(drawStart))
			report.DrawCalls = len(recorder.Calls)
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Overlaps = overlaps
	report.Systems = s.Stats().Systems
	report.UpdateTime.Finalize()
	report.DrawTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	// 4. Generate Report
	fmt.Fprintln(out, "\n\n--- Stress Test Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}

// populate fills s with a walled tile map, a keyboard driven camera and
// count drifting boxes that wrap around the world edges.
func populate(s *scene.Scene, count int, solidRatio float64) {
	walls := tiles.New(worldWidth/tileSize, worldHeight/tileSize, "tiles.png", tileSize, tileSize)
	walls.Define("floor", 0, 0, false)
	walls.Define("wall", 1, 0, true)
	walls.Fill("floor")
	for x := range walls.MapWidth() {
		walls.Set(x, 0, "wall")
		walls.Set(x, walls.MapHeight()-1, "wall")
	}
	s.AddTileMap(walls)

	s.Add(ecs.NewEntity().
		Move(worldWidth/2, worldHeight/2).
		Colour(0xFFFF00, 16, 16).
		Collide(16, 16, false).
		FourWayMovement(120).
		Camera(1).
		OnUpdate(wrap))

	s.Add(ecs.NewUIEntity().Move(8, 8).Label("stress"))

	for i := range count {
		e := ecs.NewEntity().
			Move(rand.Float64()*worldWidth, tileSize+rand.Float64()*(worldHeight-3*tileSize)).
			Colour(uint32(rand.IntN(0xFFFFFF)), 8, 8).
			Collide(8, 8, rand.Float64() < solidRatio).
			Velocity(rand.Float64()*200-100, rand.Float64()*200-100)
		if i%10 == 0 {
			e.Image("sprite.png")
		}
		e.OnUpdate(wrap)
		s.Add(e)
	}
}

func wrap(e *ecs.Entity, _ time.Duration) {
	x, y := e.X(), e.Y()
	switch {
	case x < 0:
		x += worldWidth
	case x > worldWidth:
		x -= worldWidth
	}
	switch {
	case y < 0:
		y += worldHeight
	case y > worldHeight:
		y -= worldHeight
	}
	if x != e.X() || y != e.Y() {
		e.Move(x, y)
	}
}
