package main

import (
	"flag"
	"fmt"
	"os"

	"salesetl/internal/logger"
	"salesetl/internal/webui"
)

// main serves the comparison and stats dashboard over the original and
// cleaned CSV files. Files are re-read per request so the pages track
// re-runs of the cleaner without a restart.
func main() {
	var cfg webui.Config

	flag.StringVar(&cfg.Addr, "addr", ":5000", "listen address")
	flag.StringVar(&cfg.OriginalPath, "original", "sales_transactions.csv", "raw transactions CSV path")
	flag.StringVar(&cfg.CleanedPath, "cleaned", "cleaned_sales_transactions.csv", "cleaned transactions CSV path")
	flag.IntVar(&cfg.RowLimit, "rows", 0, "max comparison rows to render (0 = default)")
	flag.IntVar(&cfg.TopN, "top", 0, "product count on the stats page (0 = default)")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	log := logger.New(*verbose)

	if err := webui.NewServer(cfg, log).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
