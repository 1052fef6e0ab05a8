// Package importer reads word lists from spreadsheet files.
//
// Files have no header row. Column A holds the word, column B its meaning
// and column C an optional pronunciation. Only the first sheet is read.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"vocabquiz/internal/domain"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptySheet means the file contains no data at all
	ErrEmptySheet = errors.New("spreadsheet has no data")
	// ErrUnsupportedFormat means the file extension is not a supported spreadsheet type
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

const utf8BOM = "\ufeff"

// SupportedExtensions lists the file extensions Parse accepts
var SupportedExtensions = []string{".xlsx", ".xlsm", ".csv"}

// Parse reads filename's content from r and returns the rows that have both
// a word and a meaning. Other rows are skipped silently.
func Parse(filename string, r io.Reader) ([]domain.WordInput, error) {
	rows, err := readRows(filename, r)
	if err != nil {
		return nil, err
	}

	if !lo.SomeBy(rows, func(row []string) bool {
		return lo.SomeBy(row, func(cell string) bool { return strings.TrimSpace(cell) != "" })
	}) {
		return nil, ErrEmptySheet
	}

	return RowsToWords(rows), nil
}

// RowsToWords converts raw rows into word inputs, dropping rows without a word or meaning
func RowsToWords(rows [][]string) []domain.WordInput {
	return lo.FilterMap(rows, func(row []string, _ int) (domain.WordInput, bool) {
		in := domain.WordInput{
			Name:          cell(row, 0),
			Meaning:       cell(row, 1),
			Pronunciation: cell(row, 2),
		}
		return in, in.Name != "" && in.Meaning != ""
	})
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readRows(filename string, r io.Reader) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".xlsx", ".xlsm":
		return readWorkbook(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return rows, nil
}
