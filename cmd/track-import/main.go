// Command track-import loads a dataset JSON file and stores it in the
// sqlite track archive read by herd-report -db.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/track"
	"github.com/banshee-data/herd.report/internal/trackdb"
	"github.com/banshee-data/herd.report/internal/version"
)

var (
	input       = flag.String("input", "", "Dataset JSON file (default $HERD_INPUT)")
	dbPath      = flag.String("db", "", "Archive path (default $HERD_DB, else tracks.db)")
	verbose     = flag.Bool("verbose", false, "Log diagnostic detail")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("track-import"))
		return
	}
	monitoring.SetVerbose(*verbose)

	in := firstNonEmpty(*input, os.Getenv("HERD_INPUT"))
	if in == "" {
		log.Fatal("an -input dataset is required")
	}
	db := firstNonEmpty(*dbPath, os.Getenv("HERD_DB"), "tracks.db")

	if err := importFile(context.Background(), os.Stdout, in, db); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// importFile loads input, replaces the archive contents at dbPath with it
// and reports the import id on w.
func importFile(ctx context.Context, w io.Writer, input, dbPath string) error {
	ds, err := track.LoadFile(input)
	if err != nil {
		return err
	}

	db, err := trackdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.Import(ctx, ds, input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "import %s: %d entities, %d position samples -> %s\n", id, ds.Len(), ds.TotalPositions(), dbPath)
	return err
}
