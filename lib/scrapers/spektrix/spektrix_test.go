package spektrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelopeBareList(t *testing.T) {
	records, err := decodeEnvelope([]byte(`[{"title": "Hamlet"}, {"title": "Vanya"}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Hamlet", records[0].String("title"))
}

func TestDecodeEnvelopeNestedKeys(t *testing.T) {
	for _, body := range []string{
		`{"events": [{"title": "Hamlet"}]}`,
		`{"performances": [{"title": "Hamlet"}]}`,
		`{"data": [{"title": "Hamlet"}]}`,
	} {
		records, err := decodeEnvelope([]byte(body))
		require.NoError(t, err)
		require.Len(t, records, 1)
	}
}

func TestDecodeEnvelopePrefersFirstPopulatedKey(t *testing.T) {
	body := `{"events": [], "performances": [{"title": "Hamlet"}]}`
	records, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestDecodeEnvelopeUnknownShape(t *testing.T) {
	records, err := decodeEnvelope([]byte(`{"total": 12}`))
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = decodeEnvelope([]byte(`"just a string"`))
	require.Error(t, err)
}

func TestRecordsFromPage(t *testing.T) {
	page := `<html><head><script>
		var config = {theme: 'dark'};
		var events = [
			{"title": "Hamlet [Director\'s Cut]", "instanceId": 4411, "className": "main-stage",},
			{"title": "An Octoroon", "firstPerformance": "2025-02-21"},
		];
	</script></head><body></body></html>`

	records, err := recordsFromPage(page)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Hamlet [Director's Cut]", records[0].String("title"))
	require.Equal(t, "4411", records[0].String("instanceId"))
	require.Equal(t, "2025-02-21", records[1].String("firstPerformance"))
}

func TestRecordsFromPageNoDeclaration(t *testing.T) {
	records, err := recordsFromPage(`<html><body>nothing embedded</body></html>`)
	require.NoError(t, err)
	require.Nil(t, records)
}

func TestRecordsFromPageMalformedArray(t *testing.T) {
	_, err := recordsFromPage(`<script>var events = [{"title": }];</script>`)
	require.Error(t, err)
}

func TestNewDefaultsApiEndpoint(t *testing.T) {
	s, err := New(Config{BaseUrl: "https://www.nytw.org/"})
	require.NoError(t, err)
	require.Equal(t, "https://www.nytw.org/wp-json/spektrix/v1", s.apiEndpoint)

	strategies := s.Strategies()
	require.Len(t, strategies, 4)
	require.Equal(t, "api:events", strategies[0].Name)
	require.Equal(t, "page:embedded-array", strategies[3].Name)
}
