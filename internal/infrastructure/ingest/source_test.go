package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"github.com/cartcompare/backend/internal/domain"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestFileSourceReadCSV(t *testing.T) {
	source := NewFileSource(zerolog.Nop())

	csvContent := "name,price,category\n" +
		"Tesco Whole Milk 2 Pint,£1.20,Milk & Dairy\n" +
		"\"Biscuits, Chocolate\",£1.50,Biscuits\n" +
		",£0.99,Orphaned\n" +
		"Bread Rolls,£0.85\n"

	path := writeTempFile(t, "tesco.csv", []byte(csvContent))
	records, err := source.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Tesco Whole Milk 2 Pint", records[0].Name)
	assert.Equal(t, "£1.20", records[0].Price)
	assert.Equal(t, "Milk & Dairy", records[0].Category)

	// Quoted field with an embedded comma survives.
	assert.Equal(t, "Biscuits, Chocolate", records[1].Name)

	// Short row still maps; the missing category is just empty.
	assert.Equal(t, "Bread Rolls", records[2].Name)
	assert.Empty(t, records[2].Category)
}

func TestFileSourceReadCSVCapitalizedHeaders(t *testing.T) {
	source := NewFileSource(zerolog.Nop())

	path := writeTempFile(t, "asda.csv", []byte("Name,Price,Category\nASDA Butter 250g,£1.99,Dairy\n"))
	records, err := source.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ASDA Butter 250g", records[0].Name)
	assert.Equal(t, "£1.99", records[0].Price)
}

func TestReadCSVLegacyEncoding(t *testing.T) {
	// A Windows-1252 export: 0xA3 is the pound sign, 0xE9 is e-acute. Decoded
	// correctly the digits survive and no mojibake artifacts appear.
	var buf bytes.Buffer
	buf.WriteString("name,price\n")
	for i := 0; i < 5; i++ {
		buf.WriteString("Caf\xe9 Latte Sachets,\xa31.05\n")
	}

	rows, err := readCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	price := rows[0]["price"]
	assert.Contains(t, price, "1.05")
	assert.NotContains(t, price, "Â")
}

func TestFileSourceReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", "price", "category"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Morrisons Free Range Eggs 6 Pack", "£1.75", "Eggs"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Morrisons Orange Juice 1l", "£1.10", "Juice"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	path := writeTempFile(t, "morrisons.xlsx", buf.Bytes())
	source := NewFileSource(zerolog.Nop())

	records, err := source.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Morrisons Free Range Eggs 6 Pack", records[0].Name)
	assert.Equal(t, "£1.75", records[0].Price)
	assert.Equal(t, "Juice", records[1].Category)
}

func TestFileSourceReadErrors(t *testing.T) {
	source := NewFileSource(zerolog.Nop())
	ctx := context.Background()

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTempFile(t, "catalog.txt", []byte("name,price\nmilk,£1\n"))
		_, err := source.Read(ctx, path)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := source.Read(ctx, filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		path := writeTempFile(t, "tesco.csv", []byte("name,price\nmilk,£1\n"))
		_, err := source.Read(cancelled, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRowsToMaps(t *testing.T) {
	t.Run("header only yields nothing", func(t *testing.T) {
		assert.Nil(t, rowsToMaps([][]string{{"name", "price"}}))
	})

	t.Run("blank rows are skipped", func(t *testing.T) {
		rows := rowsToMaps([][]string{
			{"name", "price"},
			{"milk", "£1"},
			{"", ""},
			{"bread", "£2"},
		})
		require.Len(t, rows, 2)
		assert.Equal(t, "bread", rows[1]["name"])
	})

	t.Run("blank headers get positional names", func(t *testing.T) {
		rows := rowsToMaps([][]string{
			{"name", ""},
			{"milk", "extra"},
		})
		require.Len(t, rows, 1)
		assert.Equal(t, "extra", rows[0]["Column 2"])
	})

	t.Run("values are trimmed", func(t *testing.T) {
		rows := rowsToMaps([][]string{
			{" name ", "price"},
			{"  milk  ", " £1 "},
		})
		require.Len(t, rows, 1)
		assert.Equal(t, "milk", rows[0]["name"])
		assert.Equal(t, "£1", rows[0]["price"])
	})
}

func TestMapRecords(t *testing.T) {
	records := mapRecords([]map[string]string{
		{"name": "milk", "price": "£1", "category": "dairy"},
		{"Name": "bread", "Price": "£2"},
		{"price": "£3"},
	})
	require.Len(t, records, 2)
	assert.Equal(t, domain.RawRecord{Name: "milk", Price: "£1", Category: "dairy"}, records[0])
	assert.Equal(t, "bread", records[1].Name)
	assert.Equal(t, "£2", records[1].Price)
}
