package commands

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"stagewatch-backend/lib/configutil"
	"stagewatch-backend/lib/serviceutil"
	"stagewatch-backend/lib/shows"
	"stagewatch-backend/lib/sqliteutil"
	"stagewatch-backend/lib/telemetry"
	"stagewatch-backend/services/listings"
	"stagewatch-backend/services/listings/db"

	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type Config struct {
	Theaters    []listings.TheaterConfig `json:"theaters"`
	Concurrency int                      `json:"concurrency"`
}

var (
	scrapeDb   *string
	scrapeJson *string
)

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "results.db", "The database to write scrape results to.")
	scrapeJson = scrapeCmd.Flags().String("json", "", "Also write the full results to a JSON file.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/output.db>] [--json <path/to/output.json>]",
	Short: "Scrapes every configured theater and writes results to a database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if len(cfg.Theaters) == 0 {
			serviceutil.Fatal("invalid config", errors.New("no theaters configured"))
		}

		out, err := sqliteutil.OpenDB(db.Schema, *scrapeDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()
		service := listings.NewService(out)

		telemetry.InstrumentPerfStats(cmd.Context())

		slog.Info("scraping theaters", "count", len(cfg.Theaters), "concurrency", cfg.Concurrency)

		t1 := time.Now()
		results := listings.RunAll(cmd.Context(), cfg.Theaters, cfg.Concurrency)
		t2 := time.Now()

		err = service.SaveResults(cmd.Context(), results)
		if err != nil {
			serviceutil.Fatal("failed to save results", err)
		}

		if *scrapeJson != "" {
			err = writeResultsJson(*scrapeJson, results)
			if err != nil {
				serviceutil.Fatal("failed to write json output", err)
			}
		}

		renderSummary(results)
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())
	},
}

func writeResultsJson(path string, results []shows.ScraperResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func renderSummary(results []shows.ScraperResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Theater", "Success", "Shows", "Warnings", "Error"})

	for _, r := range results {
		t.AppendRow(table.Row{r.TheaterName, r.Success, len(r.Shows), len(r.Warnings), r.Error})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
