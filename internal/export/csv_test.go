package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewkit/klavex/internal/extract"
)

func rowWith(values map[string]string) extract.Row {
	row := extract.Row{}
	for _, col := range extract.BaseColumns() {
		row[col] = ""
	}
	for k, v := range values {
		row[k] = v
	}
	return row
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestHeader_BaseColumnsOnly(t *testing.T) {
	rows := []extract.Row{rowWith(nil), rowWith(nil)}

	assert.Equal(t, extract.BaseColumns(), Header(rows))
}

func TestHeader_DynamicColumnsInFirstSeenOrder(t *testing.T) {
	rows := []extract.Row{
		rowWith(map[string]string{"CQ:fit": "true to size"}),
		rowWith(map[string]string{"CQ:age_range": "25-34", "CQ:fit": "runs small"}),
		rowWith(map[string]string{"CQ:would_buy_again": "yes"}),
	}

	header := Header(rows)
	base := len(extract.BaseColumns())

	require.Len(t, header, base+3)
	assert.Equal(t, []string{"CQ:fit", "CQ:age_range", "CQ:would_buy_again"}, header[base:])
}

func TestHeader_SameRowExtrasAreSorted(t *testing.T) {
	rows := []extract.Row{
		rowWith(map[string]string{"CQ:zeta": "z", "CQ:alpha": "a"}),
	}

	header := Header(rows)
	base := len(extract.BaseColumns())
	assert.Equal(t, []string{"CQ:alpha", "CQ:zeta"}, header[base:])
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	gofakeit.Seed(7)
	author := gofakeit.Name()
	content := gofakeit.Sentence(10)

	rows := []extract.Row{
		rowWith(map[string]string{
			"event_id":          "e1",
			"review_author":     author,
			"review_content":    content,
			"review_rating":     "5",
			"CQ:favorite_color": "blue",
		}),
		rowWith(map[string]string{
			"event_id":      "e2",
			"review_rating": "3",
		}),
	}

	path := filepath.Join(t.TempDir(), "reviews.csv")
	result, err := WriteCSV(rows, path)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, path, result.Path)

	records := readCSV(t, path)
	require.Len(t, records, 3, "header plus one line per row")

	header := records[0]
	cols := map[string]int{}
	for i, col := range header {
		cols[col] = i
	}

	assert.Equal(t, "e1", records[1][cols["event_id"]])
	assert.Equal(t, author, records[1][cols["review_author"]])
	assert.Equal(t, content, records[1][cols["review_content"]])
	assert.Equal(t, "blue", records[1][cols["CQ:favorite_color"]])

	assert.Equal(t, "e2", records[2][cols["event_id"]])
	assert.Equal(t, "3", records[2][cols["review_rating"]])
	assert.Equal(t, "", records[2][cols["CQ:favorite_color"]], "missing optional column reads back empty")

	// Every record aligns with the header.
	for _, record := range records {
		assert.Len(t, record, len(header))
	}
}

func TestWriteCSV_EmptyRowSetStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	result, err := WriteCSV(nil, path)

	require.NoError(t, err)
	assert.Zero(t, result.Rows)

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, extract.BaseColumns(), records[0])
}

func TestWriteCSV_QuotingSurvivesRoundTrip(t *testing.T) {
	rows := []extract.Row{
		rowWith(map[string]string{
			"event_id":       "e1",
			"review_content": "Great, really \"great\"\nwould buy again",
		}),
	}

	path := filepath.Join(t.TempDir(), "quoted.csv")
	_, err := WriteCSV(rows, path)
	require.NoError(t, err)

	records := readCSV(t, path)
	cols := map[string]int{}
	for i, col := range records[0] {
		cols[col] = i
	}
	assert.Equal(t, "Great, really \"great\"\nwould buy again", records[1][cols["review_content"]])
}

func TestWriteCSV_UnwritablePath(t *testing.T) {
	_, err := WriteCSV(nil, filepath.Join(t.TempDir(), "missing", "out.csv"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out.csv")
}
