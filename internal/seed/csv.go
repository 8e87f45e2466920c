package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iliyamo/lateshow-api/internal/model"
)

// ReadEpisodes parses a CSV file whose header names at least the columns
// "date" and "number".  Column order and extra columns do not matter.
func ReadEpisodes(path string) ([]model.Episode, error) {
	var out []model.Episode
	err := readRows(path, []string{"date", "number"}, func(line int, rec map[string]string) error {
		n, err := strconv.Atoi(strings.TrimSpace(rec["number"]))
		if err != nil {
			return fmt.Errorf("%s line %d: invalid number %q", path, line, rec["number"])
		}
		out = append(out, model.Episode{Date: rec["date"], Number: n})
		return nil
	})
	return out, err
}

// ReadGuests parses a CSV file with "name" and "occupation" columns.
func ReadGuests(path string) ([]model.Guest, error) {
	var out []model.Guest
	err := readRows(path, []string{"name", "occupation"}, func(_ int, rec map[string]string) error {
		out = append(out, model.Guest{Name: rec["name"], Occupation: rec["occupation"]})
		return nil
	})
	return out, err
}

// readRows hands each data row to fn keyed by header name.  Errors from
// opening the file are returned as is so callers can test for os.ErrNotExist.
func readRows(path string, required []string, fn func(line int, rec map[string]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: empty file", path)
		}
		return fmt.Errorf("%s: read header: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		rec := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}
