package course_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-course/internal/course"
)

func TestExportWorkbook(t *testing.T) {
	c, err := course.Load(fstest.MapFS{
		"course.yaml":     {Data: []byte("title: Test Course\n")},
		"modules/01.yaml": {Data: []byte(testModule)},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var buf bytes.Buffer
	if err := course.ExportWorkbook(c, &buf); err != nil {
		t.Fatalf("ExportWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	lessons, err := f.GetRows(course.SheetLessons)
	if err != nil {
		t.Fatalf("GetRows(Lessons) error = %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("Lessons rows = %d, want header + 2", len(lessons))
	}
	if lessons[1][2] != "fund-1" || lessons[2][2] != "fund-2" {
		t.Errorf("lesson ids = %q, %q", lessons[1][2], lessons[2][2])
	}

	quiz, err := f.GetRows(course.SheetQuiz)
	if err != nil {
		t.Fatalf("GetRows(Quiz) error = %v", err)
	}
	if len(quiz) != 2 {
		t.Fatalf("Quiz rows = %d, want header + 1", len(quiz))
	}
	header := quiz[0]
	if header[len(header)-1] != "Correct" {
		t.Errorf("last header = %q, want Correct", header[len(header)-1])
	}
	row := quiz[1]
	if got := row[len(row)-1]; got != "B" {
		t.Errorf("correct letter = %q, want B", got)
	}

	exercises, err := f.GetRows(course.SheetExercises)
	if err != nil {
		t.Fatalf("GetRows(Exercises) error = %v", err)
	}
	if len(exercises) != 2 || exercises[1][3] != "docker --version" {
		t.Errorf("Exercises rows = %v", exercises)
	}
}

func TestOptionLetter(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "27"},
	}
	for _, tt := range tests {
		if got := course.OptionLetter(tt.in); got != tt.want {
			t.Errorf("OptionLetter(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
