// Command herd-report loads a wildlife tracking dataset, runs the movement,
// social, occupancy and acoustic analyses and prints a text report.
// Optional flags also write PNG figures and an HTML dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/banshee-data/herd.report/internal/aggregate"
	"github.com/banshee-data/herd.report/internal/config"
	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/render"
	"github.com/banshee-data/herd.report/internal/track"
	"github.com/banshee-data/herd.report/internal/trackdb"
	"github.com/banshee-data/herd.report/internal/version"
)

const defaultInput = "./simulation_2024_11_29_16_3_15_READABLE.json"

var (
	input       = flag.String("input", defaultInput, "Dataset JSON file")
	dbPath      = flag.String("db", "", "Read the dataset from this sqlite archive instead of -input")
	configPath  = flag.String("config", "", "Analysis config JSON (built-in defaults when empty)")
	plotsDir    = flag.String("plots", "", "Directory for PNG figures (skipped when empty)")
	htmlPath    = flag.String("html", "", "Path for the HTML dashboard (skipped when empty)")
	assetsHost  = flag.String("assets-host", "", "Override the echarts assets host in the dashboard")
	topN        = flag.Int("top", -1, "Sound transients to print (config report_top_n when negative)")
	verbose     = flag.Bool("verbose", false, "Log diagnostic detail")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// envFlags maps flag names onto environment variables that supply their
// default when the flag is not given on the command line.
var envFlags = map[string]string{
	"input":  "HERD_INPUT",
	"db":     "HERD_DB",
	"config": "HERD_CONFIG",
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}
	flag.Parse()
	if err := applyEnv(flag.CommandLine, envFlags, os.LookupEnv); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	if *showVersion {
		fmt.Println(version.String("herd-report"))
		return
	}
	monitoring.SetVerbose(*verbose)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ds, err := loadDataset(context.Background(), *input, *dbPath)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	report, err := aggregate.Run(ds, cfg)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	n := cfg.GetReportTopN()
	if *topN >= 0 {
		n = *topN
	}
	if err := aggregate.WriteText(os.Stdout, report, n); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}

	if *plotsDir != "" {
		paths, err := render.WritePlots(*plotsDir, report)
		if err != nil {
			log.Fatalf("failed to write plots: %v", err)
		}
		for _, p := range paths {
			log.Printf("wrote %s", p)
		}
	}

	if *htmlPath != "" {
		if err := writeDashboard(*htmlPath, report, render.DashboardOptions{AssetsHost: *assetsHost}); err != nil {
			log.Fatalf("failed to write dashboard: %v", err)
		}
		log.Printf("wrote %s", *htmlPath)
	}
}

// applyEnv sets every flag in env that was not given explicitly from its
// environment variable, if present.
func applyEnv(fset *flag.FlagSet, env map[string]string, lookup func(string) (string, bool)) error {
	explicit := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for name, key := range env {
		if explicit[name] {
			continue
		}
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		if err := fset.Set(name, v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func loadConfig(path string) (*config.AnalysisConfig, error) {
	if path == "" {
		return config.DefaultAnalysisConfig(), nil
	}
	return config.LoadAnalysisConfig(path)
}

// loadDataset reads from the sqlite archive when dbPath is set and from the
// JSON input file otherwise.
func loadDataset(ctx context.Context, input, dbPath string) (*track.Dataset, error) {
	if dbPath == "" {
		ds, err := track.LoadFile(input)
		if err != nil {
			return nil, err
		}
		monitoring.Debugf("loaded %d entities from %s", ds.Len(), input)
		return ds, nil
	}

	db, err := trackdb.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ds, err := db.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	monitoring.Debugf("loaded %d entities from archive %s", ds.Len(), dbPath)
	return ds, nil
}

func writeDashboard(path string, report *aggregate.Report, o render.DashboardOptions) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Dashboard(f, report, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
