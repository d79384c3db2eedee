package course_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/p-n-ai/pai-course/internal/course"
)

const testModule = `
id: mod-01
title: Docker Fundamentals
description: Core concepts.
lessons:
  - id: fund-1
    title: Introduction to Docker
    content: "<p>Docker is a platform.</p>"
    quiz:
      - question: What is a key benefit of Docker containers?
        options: [A, B, C, D]
        answer: 1
    exercises:
      - scenario: Check if Docker is installed.
        expected_command: docker --version
  - id: fund-2
    title: Docker Architecture
    content: "<p>Engine, daemon, client.</p>"
`

func TestLoad_Embedded(t *testing.T) {
	c, err := course.Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if len(c.Modules()) == 0 {
		t.Fatal("Modules() returned empty")
	}
	if c.Title() == "" {
		t.Error("Title() is empty")
	}
	if c.Welcome().Heading == "" {
		t.Error("Welcome().Heading is empty")
	}

	first, ok := c.FirstLesson()
	if !ok {
		t.Fatal("FirstLesson() not found")
	}
	if first.ID != "fund-1" {
		t.Errorf("FirstLesson().ID = %q, want fund-1", first.ID)
	}
	if len(c.Version()) != 16 {
		t.Errorf("Version() = %q, want 16 hex chars", c.Version())
	}
}

func TestLoad_ModuleOrderFollowsFileNames(t *testing.T) {
	fsys := fstest.MapFS{
		"modules/02-b.yaml": {Data: []byte("id: b\ntitle: B\nlessons: []\n")},
		"modules/01-a.yaml": {Data: []byte("id: a\ntitle: A\nlessons: []\n")},
		"modules/notes.txt": {Data: []byte("ignored")},
	}

	c, err := course.Load(fsys)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	mods := c.Modules()
	if len(mods) != 2 {
		t.Fatalf("Modules() = %d, want 2", len(mods))
	}
	if mods[0].ID != "a" || mods[1].ID != "b" {
		t.Errorf("module order = [%s %s], want [a b]", mods[0].ID, mods[1].ID)
	}
}

func TestLoad_Lookups(t *testing.T) {
	c, err := course.Load(fstest.MapFS{
		"course.yaml":                  {Data: []byte("title: Test Course\n")},
		"modules/01-fundamentals.yaml": {Data: []byte(testModule)},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	l, ok := c.Lesson("fund-2")
	if !ok {
		t.Fatal("Lesson(fund-2) not found")
	}
	if l.Title != "Docker Architecture" {
		t.Errorf("Lesson(fund-2).Title = %q", l.Title)
	}

	m, ok := c.ModuleOf("fund-2")
	if !ok || m.ID != "mod-01" {
		t.Errorf("ModuleOf(fund-2) = %v, %v; want mod-01", m, ok)
	}

	if _, ok := c.Lesson("NONEXISTENT"); ok {
		t.Error("Lesson(NONEXISTENT) should not be found")
	}
	if _, ok := c.Module("mod-99"); ok {
		t.Error("Module(mod-99) should not be found")
	}
	if c.LessonCount() != 2 {
		t.Errorf("LessonCount() = %d, want 2", c.LessonCount())
	}

	q := c.Modules()[0].Lessons[0].Quiz[0]
	if q.CorrectOption() != "B" {
		t.Errorf("CorrectOption() = %q, want B", q.CorrectOption())
	}
	if ex := l.Exercises; len(ex) != 0 {
		t.Errorf("fund-2 exercises = %d, want 0", len(ex))
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	c, err := course.Load(fstest.MapFS{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Modules()) != 0 {
		t.Errorf("Modules() = %d, want 0 for empty dir", len(c.Modules()))
	}
	if _, ok := c.FirstLesson(); ok {
		t.Error("FirstLesson() should not be found in empty catalog")
	}
}

func TestLoad_VersionTracksContent(t *testing.T) {
	a, err := course.Load(fstest.MapFS{"modules/01.yaml": {Data: []byte(testModule)}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	b, err := course.Load(fstest.MapFS{"modules/01.yaml": {Data: []byte(testModule + "\n")}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	again, err := course.Load(fstest.MapFS{"modules/01.yaml": {Data: []byte(testModule)}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if a.Version() == b.Version() {
		t.Error("Version() should change when content changes")
	}
	if a.Version() != again.Version() {
		t.Error("Version() should be stable for identical content")
	}
}

func TestLoad_NormalizesToNFC(t *testing.T) {
	// "Cafe" followed by a combining acute accent (NFD).
	doc := "id: mod-x\ntitle: \"Cafe\u0301\"\nlessons: []\n"

	c, err := course.Load(fstest.MapFS{"modules/01.yaml": {Data: []byte(doc)}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.Modules()[0].Title; got != "Caf\u00e9" {
		t.Errorf("Title = %q, want NFC form %q", got, "Caf\u00e9")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantErr   string
		namesFile bool
	}{
		{
			name:      "missing lessons",
			doc:       "id: m\ntitle: M\n",
			wantErr:   "lessons",
			namesFile: true,
		},
		{
			name: "single option",
			doc: `
id: m
title: M
lessons:
  - id: l
    title: L
    content: ""
    quiz:
      - question: Q?
        options: [only]
        answer: 0
`,
			wantErr:   "schema violations",
			namesFile: true,
		},
		{
			name: "answer out of range",
			doc: `
id: m
title: M
lessons:
  - id: l
    title: L
    content: ""
    quiz:
      - question: Q?
        options: [a, b]
        answer: 2
`,
			wantErr: "out of range",
		},
		{
			name: "misspelled field",
			doc: `
id: m
title: M
lessons:
  - id: l
    title: L
    content: ""
    exercises:
      - scenario: S
        expectedCommand: ls
`,
			wantErr:   "schema violations",
			namesFile: true,
		},
		{
			name: "duplicate lesson",
			doc: `
id: m
title: M
lessons:
  - {id: l, title: L, content: ""}
  - {id: l, title: L2, content: ""}
`,
			wantErr: "duplicate lesson id",
		},
		{
			name:      "not yaml",
			doc:       "id: [unclosed",
			wantErr:   "parsing yaml",
			namesFile: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := course.Load(fstest.MapFS{"modules/01.yaml": {Data: []byte(tt.doc)}})
			if err == nil {
				t.Fatal("Load() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
			if tt.namesFile && !strings.Contains(err.Error(), "modules/01.yaml") {
				t.Errorf("Load() error = %v, want it to name the file", err)
			}
		})
	}
}

func TestLoad_DuplicateModuleAcrossFiles(t *testing.T) {
	_, err := course.Load(fstest.MapFS{
		"modules/01.yaml": {Data: []byte("id: m\ntitle: A\nlessons: []\n")},
		"modules/02.yaml": {Data: []byte("id: m\ntitle: B\nlessons: []\n")},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate module id") {
		t.Errorf("Load() error = %v, want duplicate module id", err)
	}
}

func TestNewCatalog_ModuleWithoutLessons(t *testing.T) {
	c, err := course.NewCatalog("T", course.Welcome{}, []*course.Module{
		{ID: "empty", Title: "Empty"},
		{ID: "full", Title: "Full", Lessons: []*course.Lesson{{ID: "l1", Title: "L1"}}},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if _, ok := c.FirstLesson(); ok {
		t.Error("FirstLesson() should be absent when the first module has no lessons")
	}
	if _, ok := c.Lesson("l1"); !ok {
		t.Error("Lesson(l1) should still be reachable")
	}
}
