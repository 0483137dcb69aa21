// Command tetris-sim plays batches of bot-driven games against the engine and
// prints a Markdown report of scores, piece draws and timer behaviour.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/engine"
	"github.com/plus3/tetris/storage/memory"
	"github.com/plus3/tetris/storage/sqlite"
)

func main() {
	games := flag.Int("games", 10, "Number of games to play.")
	maxTicks := flag.Int("max-ticks", 5000, "Gravity ticks after which a logical game is abandoned.")
	realtime := flag.Bool("realtime", false, "Drive games with real timers instead of logical ticks.")
	duration := flag.Duration("duration", 10*time.Second, "Wall time limit per realtime game.")
	speedup := flag.Float64("speedup", 50, "Timer speed-up factor in realtime mode.")
	verbose := flag.Bool("verbose", false, "Log engine activity.")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	store := engine.Store(memory.New())
	if cfg.DBPath != "" {
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer db.Close()
		store = db
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	mode := "logical"
	if *realtime {
		mode = "realtime"
	}
	report := &Report{
		Mode:     mode,
		Games:    *games,
		MaxTicks: *maxTicks,
		Speedup:  *speedup,
		Width:    cfg.BoardWidth,
		Height:   cfg.BoardHeight,
		Seed:     seed,
		GameTime: Stats{Samples: make([]time.Duration, 0, *games)},
	}
	stats := newStatsObserver()

	log.Printf("Playing %d %s games...\n", *games, mode)
	startTime := time.Now()

	for i := range *games {
		gameSeed := seed + uint64(i)
		opts := append(cfg.EngineOptions(),
			engine.WithSeed(gameSeed),
			engine.WithStore(store),
			engine.WithObserver(stats),
			engine.WithLogger(logger.With(zap.Int("game", i))),
		)
		e, err := engine.New(opts...)
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}

		gameStart := time.Now()
		var result GameResult
		if *realtime {
			result, err = playRealtime(e, stats, newBot(gameSeed), *duration, *speedup)
		} else {
			result, err = playLogical(e, stats, newBot(gameSeed), *maxTicks)
		}
		if err != nil {
			log.Fatalf("Game %d failed: %v", i, err)
		}
		report.GameTime.Samples = append(report.GameTime.Samples, time.Since(gameStart))

		result.Index = i
		result.Seed = gameSeed
		report.Results = append(report.Results, result)
		if *verbose {
			log.Printf("Game %d: %s after %d ticks, score %d\n", i, result.Outcome, result.Ticks, result.Score.Total)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.GameTime.Finalize()
	report.HighScore, err = store.LoadHighScore(context.Background())
	if err != nil {
		log.Fatalf("Failed to read high score: %v", err)
	}
	report.collect(stats)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// playLogical advances the game one gravity tick per bot intent, deriving
// clock ticks from the gravity intervals that would have elapsed.
func playLogical(e *engine.Engine, obs *statsObserver, b *bot, maxTicks int) (GameResult, error) {
	e.Restart()

	var result GameResult
	var simulated time.Duration
	for result.Ticks < maxTicks && e.Phase() != engine.GameOver {
		if result.Ticks == maxTicks/2 {
			ok, err := roundTrip(e, obs)
			if err != nil {
				return result, err
			}
			result.RoundTrip = ok
		}

		i := b.choose()
		if apply(e, i) {
			result.Intents++
		}

		interval, ok := e.Interval()
		if !ok {
			break
		}
		simulated += interval
		e.Tick()
		result.Ticks++
		for simulated >= engine.ClockInterval {
			e.ClockTick()
			simulated -= engine.ClockInterval
		}
	}
	return finish(e, result), nil
}

// playRealtime runs the game under a Driver while the bot submits intents,
// until the game ends or limit passes.
func playRealtime(e *engine.Engine, obs *statsObserver, b *bot, limit time.Duration, speedup float64) (GameResult, error) {
	e.Restart()

	var result GameResult
	ok, err := roundTrip(e, obs)
	if err != nil {
		return result, err
	}
	result.RoundTrip = ok

	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()

	driver := engine.NewDriver(e, engine.WithTimeScale(speedup))
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	over := false
	for !over {
		err := driver.Submit(ctx, func(e *engine.Engine) {
			if apply(e, b.choose()) {
				result.Intents++
			}
			over = e.Phase() == engine.GameOver
		})
		if err != nil {
			break
		}
		time.Sleep(time.Duration(float64(50*time.Millisecond) / speedup))
	}
	cancel()
	<-done

	result.Driver = driver.Stats()
	result.Ticks = int(statsFor(result.Driver, "gravity").ExecutionCount)
	return finish(e, result), nil
}

// roundTrip saves the game, replaces it with a fresh one, loads it back and
// checks the reloaded snapshot matches the saved one. The game is resumed
// afterwards. Notifications raised along the way are not tallied.
func roundTrip(e *engine.Engine, obs *statsObserver) (ok bool, err error) {
	if e.Phase() != engine.Falling {
		return false, nil
	}
	obs.mute(func() { ok, err = reload(e) })
	return ok, err
}

func reload(e *engine.Engine) (bool, error) {
	ctx := context.Background()

	before, err := e.Snapshot().Fields()
	if err != nil {
		return false, err
	}
	if err := e.Save(ctx); err != nil {
		return false, fmt.Errorf("save: %w", err)
	}
	e.Restart()
	if err := e.Load(ctx); err != nil {
		return false, fmt.Errorf("load: %w", err)
	}
	after, err := e.Snapshot().Fields()
	if err != nil {
		return false, err
	}
	e.Resume()
	return maps.Equal(before, after), nil
}

func finish(e *engine.Engine, result GameResult) GameResult {
	result.Score = e.Score()
	result.Elapsed = engine.FormatElapsed(e.Elapsed())
	result.Outcome = "abandoned"
	if e.Phase() == engine.GameOver {
		result.Outcome = "topped out"
	}
	return result
}

func statsFor(stats *engine.DriverStats, name string) engine.SourceStats {
	if stats == nil {
		return engine.SourceStats{}
	}
	for _, s := range stats.Sources {
		if s.Name == name {
			return s
		}
	}
	return engine.SourceStats{}
}
