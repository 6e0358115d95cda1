// Package sim implements the gridfall scenario simulator command: it loads
// a world definition and a Lua scenario, replays the scenario against a
// fresh run, and prints the transcript plus the requested exports.
package sim

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/louisbranch/gridfall/internal/platform/config"
	"github.com/louisbranch/gridfall/internal/platform/id"
	"github.com/louisbranch/gridfall/internal/platform/random"
	"github.com/louisbranch/gridfall/internal/run"
	"github.com/louisbranch/gridfall/internal/scenario"
	"github.com/louisbranch/gridfall/internal/storage"
	"github.com/louisbranch/gridfall/internal/storage/sqlite"
	"github.com/louisbranch/gridfall/internal/timeline"
	"github.com/louisbranch/gridfall/internal/world"
	"github.com/louisbranch/gridfall/internal/world/validate"
)

// Config carries the simulator settings.
type Config struct {
	WorldPath    string `env:"GRIDFALL_WORLD"`
	ScenarioPath string `env:"GRIDFALL_SCENARIO"`
	Locale       string `env:"GRIDFALL_LOCALE"`
	Format       string `env:"GRIDFALL_FORMAT" envDefault:"text"`
	StorePath    string `env:"GRIDFALL_DB"`
	Seed         int64  `env:"GRIDFALL_SEED"`
}

// ParseConfig reads configuration from the environment, then lets flags
// override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.WorldPath, "world", cfg.WorldPath, "path to the world definition (json or yaml)")
	fs.StringVar(&cfg.ScenarioPath, "scenario", cfg.ScenarioPath, "path to the lua scenario script")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for player-facing messages")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "export format: text, markdown, or json")
	fs.StringVar(&cfg.StorePath, "db", cfg.StorePath, "optional sqlite path to persist the world and finished run")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for automatic rolls (0 picks a random seed)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.WorldPath == "" {
		return Config{}, fmt.Errorf("world path is required")
	}
	if cfg.ScenarioPath == "" {
		return Config{}, fmt.Errorf("scenario path is required")
	}
	return cfg, nil
}

// Run executes the simulator.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	data, err := os.ReadFile(cfg.WorldPath)
	if err != nil {
		return fmt.Errorf("read world: %w", err)
	}
	def, errs := validate.Bytes(data)
	if len(errs) > 0 {
		for _, e := range errs {
			log.Printf("invalid world: %s", e)
		}
		return fmt.Errorf("world definition failed validation with %d errors", len(errs))
	}

	sc, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
	}
	log.Printf("scenario %q, seed %d", sc.Name, seed)

	runner, err := scenario.NewRunner(def, cfg.Locale, seed, nil)
	if err != nil {
		return err
	}

	results, runErr := runner.Run(sc)
	for i, result := range results {
		status := ""
		if result.Rejected {
			status = " (rejected)"
		}
		fmt.Fprintf(out, "step %d %s%s: %s\n", i+1, result.Step.Kind, status, result.Message)
	}
	if runErr != nil {
		return runErr
	}

	state := runner.State()

	export, err := timeline.ExportTimeline(state.Timeline, timeline.Format(cfg.Format))
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, export)

	summary, err := timeline.ExportSummary(timeline.Summarize(state, def), timeline.Format(cfg.Format))
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, summary)

	if cfg.StorePath != "" {
		if err := persist(ctx, cfg.StorePath, def, state); err != nil {
			return err
		}
	}
	return nil
}

// persist stores the world and the finished run so the transcript can be
// audited later from the database.
func persist(ctx context.Context, path string, def world.Definition, state run.State) error {
	store, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	worldID, err := id.NewID()
	if err != nil {
		return err
	}
	if err := store.PutWorld(ctx, storage.WorldRecord{ID: worldID, Definition: def}); err != nil {
		return err
	}

	runID, err := id.NewID()
	if err != nil {
		return err
	}
	if err := store.CreateRun(ctx, storage.RunRecord{ID: runID, WorldID: worldID, State: state}); err != nil {
		return err
	}
	log.Printf("stored run %s for world %s", runID, worldID)
	return nil
}
