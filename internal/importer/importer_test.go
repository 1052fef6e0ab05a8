package importer

import (
	"bytes"
	"strings"
	"testing"

	"vocabquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParse_Workbook(t *testing.T) {
	buf := workbook(t, [][]any{
		{"本", "book", "hon"},
		{"水", "water"},
		{"", "no name"},
		{"no meaning"},
		{42, "forty-two"},
		{"  空  ", "  sky  ", " sora "},
	})

	words, err := Parse("words.xlsx", buf)

	require.NoError(t, err)
	assert.Equal(t, []domain.WordInput{
		{Name: "本", Meaning: "book", Pronunciation: "hon"},
		{Name: "水", Meaning: "water"},
		{Name: "42", Meaning: "forty-two"},
		{Name: "空", Meaning: "sky", Pronunciation: "sora"},
	}, words)
}

func TestParse_WorkbookReadsFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"本", "book"}))
	_, err := f.NewSheet("Extra")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Extra", "A1", &[]any{"水", "water"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	words, err := Parse("WORDS.XLSX", buf)

	require.NoError(t, err)
	assert.Equal(t, []domain.WordInput{{Name: "本", Meaning: "book"}}, words)
}

func TestParse_EmptyWorkbook(t *testing.T) {
	buf := workbook(t, nil)

	words, err := Parse("words.xlsx", buf)

	assert.ErrorIs(t, err, ErrEmptySheet)
	assert.Nil(t, words)
}

func TestParse_NoValidRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"only a name"},
		{"", "only a meaning"},
	})

	words, err := Parse("words.xlsx", buf)

	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestParse_CorruptWorkbook(t *testing.T) {
	words, err := Parse("words.xlsx", strings.NewReader("not a zip file"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptySheet)
	assert.Nil(t, words)
}

func TestParse_CSV(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expected      []domain.WordInput
		expectedError error
	}{
		{
			name:    "rows with optional pronunciation",
			content: "本,book,hon\n水,water\n",
			expected: []domain.WordInput{
				{Name: "本", Meaning: "book", Pronunciation: "hon"},
				{Name: "水", Meaning: "water"},
			},
		},
		{
			name:     "byte order mark stripped",
			content:  "\ufeff本,book\n",
			expected: []domain.WordInput{{Name: "本", Meaning: "book"}},
		},
		{
			name:     "quoted comma",
			content:  "\"hello, world\",greeting\n",
			expected: []domain.WordInput{{Name: "hello, world", Meaning: "greeting"}},
		},
		{
			name:          "empty file",
			content:       "",
			expectedError: ErrEmptySheet,
		},
		{
			name:          "blank cells only",
			content:       ",,\n , \n",
			expectedError: ErrEmptySheet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Parse("words.csv", strings.NewReader(tt.content))

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, words)
		})
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"words.xls", "words.txt", "words"} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name, strings.NewReader("data"))
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}
