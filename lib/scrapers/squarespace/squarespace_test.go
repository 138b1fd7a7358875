package squarespace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const calendarPage = `<html><body>
<div class="eventlist-column-info">
  <h1 class="eventlist-title">
    <a class="eventlist-title-link" href="/calendar/hamlet">Hamlet</a>
  </h1>
  <ul>
    <li class="eventlist-meta-address">Mainstage Theater</li>
  </ul>
  <time class="event-date" datetime="2025-02-21">Friday, February 21, 2025</time>
  <time class="event-date-end" datetime="2025-03-29">Saturday, March 29, 2025</time>
  <time class="event-time-12hr">7:30 PM</time>
  <div class="eventlist-excerpt">The prince returns.</div>
</div>
<div class="eventlist-column-info">
  <h2 class="eventlist-title">
    <a class="eventlist-title-link" href="/calendar/reading">New Play Reading</a>
  </h2>
  <time class="event-date" datetime="2025-03-02">March 2, 2025</time>
  <time class="event-time-12hr">2:00 PM</time>
</div>
<div class="eventlist-column-info">
  <h1 class="eventlist-title">no link, not an event</h1>
</div>
</body></html>`

func TestRecordsFromCalendar(t *testing.T) {
	records, err := recordsFromCalendar(calendarPage)
	require.NoError(t, err)
	require.Len(t, records, 2)

	hamlet := records[0]
	require.Equal(t, "Hamlet", hamlet.String("title"))
	require.Equal(t, "/calendar/hamlet", hamlet.String("url"))
	require.Equal(t, "2025-02-21", hamlet.String("start"))
	require.Equal(t, "2025-03-29", hamlet.String("end"))
	require.Equal(t, "7:30 PM (2025-02-21 to 2025-03-29)", hamlet.String("schedule"))
	require.Equal(t, "Mainstage Theater", hamlet.String("venue"))
	require.Equal(t, "The prince returns.", hamlet.String("description"))

	reading := records[1]
	require.Equal(t, "New Play Reading", reading.String("title"))
	require.Equal(t, "2025-03-02", reading.String("start"))
	require.Equal(t, "", reading.String("end"))
	// single-day events keep the bare time as schedule
	require.Equal(t, "2:00 PM", reading.String("schedule"))
}

func TestRecordsFromCalendarFallbackContainers(t *testing.T) {
	page := `<html><body>
	<article class="summary event-item">
	  <h2 class="eventlist-title">
	    <a class="eventlist-title-link" href="/shows/vanya">Uncle Vanya</a>
	  </h2>
	  <div class="event-location">Studio B</div>
	  <p class="event-excerpt">A country visit.</p>
	</article>
	</body></html>`

	records, err := recordsFromCalendar(page)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Uncle Vanya", records[0].String("title"))
	require.Equal(t, "Studio B", records[0].String("venue"))
	require.Equal(t, "A country visit.", records[0].String("description"))
}

func TestRecordsFromCalendarEmptyPage(t *testing.T) {
	records, err := recordsFromCalendar(`<html><body><p>Nothing on.</p></body></html>`)
	require.NoError(t, err)
	require.Empty(t, records)
}
