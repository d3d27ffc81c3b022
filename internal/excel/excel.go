// Package excel reads and writes the card spreadsheet used for bulk
// import and export.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vytor/wordcards/internal/models"
)

// SheetName is the default sheet of a new workbook, which Export fills.
const SheetName = "Sheet1"

// Header is the first row of an exported sheet. Import accepts sheets with
// or without it.
var Header = []string{"Russian", "Russian example", "English", "English example", "Category", "Course", "Learned"}

const (
	colRussian = iota
	colRussianExample
	colEnglish
	colEnglishExample
	colCategory
	colCourse
)

// Export writes cards as an xlsx workbook.
func Export(w io.Writer, cards []models.WordCard) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, c := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			c.Russian,
			c.RussianExample,
			c.English,
			c.EnglishExample,
			c.CategoryName,
			c.CourseOrDefault(),
			c.Learned,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Parse reads card drafts from the first sheet of an xlsx workbook.
// Category names are matched case-insensitively against categories; an
// unknown name leaves the card uncategorised and is reported as a warning.
func Parse(r io.Reader, categories []models.Category) ([]models.CardDraft, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		byName[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
	}

	var (
		drafts   []models.CardDraft
		warnings []string
	)
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}

		d := models.CardDraft{
			Russian:        cell(row, colRussian),
			RussianExample: cell(row, colRussianExample),
			English:        cell(row, colEnglish),
			EnglishExample: cell(row, colEnglishExample),
		}
		if name := cell(row, colCategory); name != "" {
			id, ok := byName[strings.ToLower(name)]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("Row %d: unknown category %q", i+1, name))
			}
			d.CategoryID = id
		}
		if raw := cell(row, colCourse); raw != "" {
			course, err := strconv.Atoi(raw)
			if err != nil || course < 1 {
				warnings = append(warnings, fmt.Sprintf("Row %d: invalid course %q", i+1, raw))
			} else {
				d.Course = &course
			}
		}
		drafts = append(drafts, d)
	}
	return drafts, warnings, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isHeader(row []string) bool {
	return strings.EqualFold(cell(row, colRussian), Header[colRussian])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
