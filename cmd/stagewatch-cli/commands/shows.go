package commands

import (
	"os"

	"stagewatch-backend/lib/serviceutil"
	"stagewatch-backend/lib/sqliteutil"
	"stagewatch-backend/services/listings"
	"stagewatch-backend/services/listings/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showsDb *string

func init() {
	showsDb = showsCmd.Flags().String("db", "results.db", "The database to read scrape results from.")
	rootCmd.AddCommand(showsCmd)
}

var showsCmd = &cobra.Command{
	Use:   "shows <theater name> [--db <path/to/results.db>]",
	Short: "Prints the shows from a theater's most recent successful scrape.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *showsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		service := listings.NewService(database)

		latest, err := service.LatestShows(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to query shows", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Title", "Start", "End", "Venue", "Status", "Tickets"})

		for _, s := range latest {
			var start, end string
			if s.Dates != nil {
				start = s.Dates.Start
				end = s.Dates.End
			}
			t.AppendRow(table.Row{s.Title, start, end, s.Venue, s.Status, s.TicketUrl})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
