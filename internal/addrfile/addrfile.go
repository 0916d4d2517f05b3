// Package addrfile reads address lists for batch checks from plain text
// and XLSX files.
package addrfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadAddresses loads one address per row from path, dispatching on the
// file extension: .xlsx is read as a spreadsheet (first column),
// everything else as plain text (one address per line).
func ReadAddresses(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, 0)
	}
	return ReadText(path)
}

// ReadText reads one address per line. Blank lines and lines starting
// with '#' are skipped.
func ReadText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "addrfile: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	var addresses []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addresses = append(addresses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "addrfile: read %s", path)
	}
	return addresses, nil
}

// ReadXLSX reads addresses from the first column of the given sheet.
// Empty cells are skipped.
func ReadXLSX(path string, sheetIndex int) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "addrfile: open %s", path)
	}

	if sheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("addrfile: sheet index %d out of range (file has %d sheets)", sheetIndex, len(f.Sheets))
	}
	sheet := f.Sheets[sheetIndex]

	var addresses []string
	for _, row := range sheet.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		addr := strings.TrimSpace(row.Cells[0].String())
		if addr == "" {
			continue
		}
		addresses = append(addresses, addr)
	}
	return addresses, nil
}
