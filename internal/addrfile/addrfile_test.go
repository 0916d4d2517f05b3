package addrfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.txt")
	content := `
דיזנגוף 50 תל אביב
# a comment line

Rothschild Blvd 1, Tel Aviv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	addrs, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"דיזנגוף 50 תל אביב", "Rothschild Blvd 1, Tel Aviv"}, addrs)
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("addresses")
	require.NoError(t, err)
	for _, addr := range []string{"Dizengoff St 50", "", "Allenby St 10"} {
		row := sheet.AddRow()
		row.AddCell().Value = addr
	}
	require.NoError(t, f.Save(path))

	addrs, err := ReadXLSX(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dizengoff St 50", "Allenby St 10"}, addrs)
}

func TestReadXLSX_SheetOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.xlsx")

	f := xlsx.NewFile()
	_, err := f.AddSheet("only")
	require.NoError(t, err)
	require.NoError(t, f.Save(path))

	_, err = ReadXLSX(path, 3)
	assert.Error(t, err)
}

func TestReadAddresses_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(txt, []byte("one address\n"), 0644))

	addrs, err := ReadAddresses(txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"one address"}, addrs)

	xl := filepath.Join(dir, "b.xlsx")
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("s")
	require.NoError(t, err)
	sheet.AddRow().AddCell().Value = "xlsx address"
	require.NoError(t, f.Save(xl))

	addrs, err = ReadAddresses(xl)
	require.NoError(t, err)
	assert.Equal(t, []string{"xlsx address"}, addrs)
}
