package course

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Sheet names written by ExportWorkbook.
const (
	SheetLessons   = "Lessons"
	SheetQuiz      = "Quiz"
	SheetExercises = "Exercises"
)

// ExportWorkbook writes the catalog as an XLSX workbook with one sheet for the
// lesson index, one for quiz questions and one for exercises.
func ExportWorkbook(c *Catalog, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLessons); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{SheetQuiz, SheetExercises} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	if err := writeLessons(f, c); err != nil {
		return err
	}
	if err := writeQuiz(f, c); err != nil {
		return err
	}
	if err := writeExercises(f, c); err != nil {
		return err
	}

	if c.Version() != "" {
		if err := f.SetDocProps(&excelize.DocProperties{
			Title:   c.Title(),
			Version: c.Version(),
		}); err != nil {
			return fmt.Errorf("setting doc props: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeLessons(f *excelize.File, c *Catalog) error {
	rows := [][]any{{"Module ID", "Module", "Lesson ID", "Lesson", "Questions", "Exercises"}}
	for _, m := range c.Modules() {
		for _, l := range m.Lessons {
			rows = append(rows, []any{m.ID, m.Title, l.ID, l.Title, len(l.Quiz), len(l.Exercises)})
		}
	}
	return writeRows(f, SheetLessons, rows)
}

func writeQuiz(f *excelize.File, c *Catalog) error {
	maxOptions := 0
	for _, m := range c.Modules() {
		for _, l := range m.Lessons {
			for _, q := range l.Quiz {
				maxOptions = max(maxOptions, len(q.Options))
			}
		}
	}

	header := []any{"Lesson ID", "No.", "Question"}
	for i := range maxOptions {
		header = append(header, "Option "+OptionLetter(i))
	}
	header = append(header, "Correct")

	rows := [][]any{header}
	for _, m := range c.Modules() {
		for _, l := range m.Lessons {
			for i, q := range l.Quiz {
				row := []any{l.ID, i + 1, q.Question}
				for j := range maxOptions {
					if j < len(q.Options) {
						row = append(row, q.Options[j])
					} else {
						row = append(row, "")
					}
				}
				row = append(row, OptionLetter(q.Answer))
				rows = append(rows, row)
			}
		}
	}
	return writeRows(f, SheetQuiz, rows)
}

func writeExercises(f *excelize.File, c *Catalog) error {
	rows := [][]any{{"Lesson ID", "No.", "Scenario", "Expected"}}
	for _, m := range c.Modules() {
		for _, l := range m.Lessons {
			for i, ex := range l.Exercises {
				rows = append(rows, []any{l.ID, i + 1, ex.Scenario, ex.ExpectedCommand})
			}
		}
	}
	return writeRows(f, SheetExercises, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// OptionLetter returns the display letter for an option index: A, B, ... Z, then 27, 28...
func OptionLetter(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}
