package normalize

import (
	"strings"
	"testing"

	"stagewatch-backend/lib/scrapers/extract"
	"stagewatch-backend/lib/shows"

	"github.com/stretchr/testify/require"
)

var testOpts = Options{
	TheaterName: "Steppenwolf",
	TheaterUrl:  "https://www.steppenwolf.org",
	Source:      "wordpress_spektrix",
}

func TestFromRecordFieldPriority(t *testing.T) {
	rec := extract.Record{
		"name":             "Hamlet (fallback)",
		"title":            "Hamlet",
		"firstPerformance": "2025-02-21T19:30:00",
		"lastPerformance":  "2025-03-29T19:30:00",
		"synopsis":         "The prince of &amp; Denmark.",
		"instanceId":       float64(4411),
		"imageUrl":         "/media/hamlet.jpg",
		"location":         "Downstairs Theater",
	}

	show, err := FromRecord(rec, testOpts)
	require.NoError(t, err)
	require.NotNil(t, show)

	require.Equal(t, "Hamlet", show.Title)
	require.Equal(t, "Steppenwolf", show.TheaterName)
	require.Equal(t, "wordpress_spektrix", show.Source)
	require.Equal(t, "2025-02-21", show.Dates.Start)
	require.Equal(t, "2025-03-29", show.Dates.End)
	require.Equal(t, "The prince of & Denmark.", show.Description)
	require.Equal(t, "https://www.steppenwolf.org/performances/?instanceId=4411", show.TicketUrl)
	require.Equal(t, "https://www.steppenwolf.org/media/hamlet.jpg", show.ImageUrl)
	require.Equal(t, "Downstairs Theater", show.Venue)
}

func TestFromRecordExplicitUrlBeatsInstanceId(t *testing.T) {
	rec := extract.Record{
		"title":      "Hamlet",
		"url":        "/shows/hamlet",
		"instanceId": float64(4411),
	}

	show, err := FromRecord(rec, testOpts)
	require.NoError(t, err)
	require.Equal(t, "https://www.steppenwolf.org/shows/hamlet", show.TicketUrl)
}

func TestFromRecordNoTitleDropped(t *testing.T) {
	show, err := FromRecord(extract.Record{"start": "2025-02-21"}, testOpts)
	require.NoError(t, err)
	require.Nil(t, show)

	show, err = FromRecord(extract.Record{"title": "   "}, testOpts)
	require.NoError(t, err)
	require.Nil(t, show)
}

func TestFromRecordBlankTheaterIsError(t *testing.T) {
	_, err := FromRecord(extract.Record{"title": "Hamlet"}, Options{TheaterUrl: "https://x.org"})
	require.ErrorIs(t, err, shows.ErrValidation)
}

func TestFromRecordDescriptionTruncated(t *testing.T) {
	rec := extract.Record{
		"title":       "Hamlet",
		"description": strings.Repeat("a", 700),
	}

	show, err := FromRecord(rec, testOpts)
	require.NoError(t, err)
	require.Len(t, show.Description, 500)
	require.True(t, strings.HasSuffix(show.Description, "..."))
}

func TestFromRecordPriceRange(t *testing.T) {
	rec := extract.Record{
		"title":   "Hamlet",
		"pricing": "Tickets $20 - $65, rush $10",
	}

	show, err := FromRecord(rec, testOpts)
	require.NoError(t, err)
	require.Equal(t, "$20-$65", show.PriceRange)
}

func TestFromRecordScheduleOnlyDates(t *testing.T) {
	rec := extract.Record{
		"title":      "Hamlet",
		"dates_text": "Feb 21 - Mar 29, 2025",
	}

	show, err := FromRecord(rec, testOpts)
	require.NoError(t, err)
	require.NotNil(t, show.Dates)
	require.Equal(t, "2025-03-29", show.Dates.End)
	require.Equal(t, "Feb 21 - Mar 29, 2025", show.Dates.Schedule)
}

func TestFromRecordNoDates(t *testing.T) {
	show, err := FromRecord(extract.Record{"title": "Hamlet"}, testOpts)
	require.NoError(t, err)
	require.Nil(t, show.Dates)
}

func TestResolveStatus(t *testing.T) {
	for _, tt := range []struct {
		name string
		rec  extract.Record
		want shows.Status
	}{
		{"default", extract.Record{}, shows.StatusUpcoming},
		{"running class", extract.Record{"className": "event main-stage"}, shows.StatusRunning},
		{"perfs class", extract.Record{"class_name": "perfs-list"}, shows.StatusRunning},
		{"closed", extract.Record{"status": "Closed"}, shows.StatusClosed},
		{"past", extract.Record{"status": "past production"}, shows.StatusClosed},
		{"postponed", extract.Record{"status": "Postponed until fall"}, shows.StatusPostponed},
		{"canceled", extract.Record{"status": "CANCELLED"}, shows.StatusCanceled},
		{
			// an explicit cancellation must survive the running class tag
			"canceled beats running",
			extract.Record{"className": "main-stage", "status": "canceled"},
			shows.StatusCanceled,
		},
		{
			"running beats nothing",
			extract.Record{"className": "main-stage", "status": "on sale"},
			shows.StatusRunning,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolveStatus(tt.rec))
		})
	}
}

func TestAllDropsOnlyBadRecords(t *testing.T) {
	records := []extract.Record{
		{"title": "Hamlet"},
		{"description": "no title here"},
		{"title": "An Octoroon"},
	}

	out, err := All(records, testOpts)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Hamlet", out[0].Title)
	require.Equal(t, "An Octoroon", out[1].Title)
}
