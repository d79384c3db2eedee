// Package course holds the read-only course catalog: modules, lessons, quiz
// questions and exercises, loaded once at startup.
package course

import (
	"fmt"
	"log/slog"
)

// Catalog is the ordered, immutable collection of modules served by the viewer.
// It is safe for concurrent readers because nothing mutates it after construction.
type Catalog struct {
	title   string
	welcome Welcome
	version string
	modules []*Module
	byID    map[string]*Module
	lessons map[string]*Lesson
	owners  map[string]*Module
}

// NewCatalog checks the structural invariants of modules and builds a catalog.
func NewCatalog(title string, welcome Welcome, modules []*Module) (*Catalog, error) {
	c := &Catalog{
		title:   title,
		welcome: welcome,
		modules: modules,
		byID:    make(map[string]*Module, len(modules)),
		lessons: make(map[string]*Lesson),
		owners:  make(map[string]*Module),
	}

	for _, m := range modules {
		if m == nil {
			return nil, fmt.Errorf("nil module")
		}
		if m.ID == "" {
			return nil, fmt.Errorf("module %q: id is required", m.Title)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module id %q", m.ID)
		}
		c.byID[m.ID] = m

		if len(m.Lessons) == 0 {
			slog.Warn("module has no lessons", "module", m.ID)
		}
		for _, l := range m.Lessons {
			if err := checkLesson(l); err != nil {
				return nil, fmt.Errorf("module %s: %w", m.ID, err)
			}
			if _, dup := c.lessons[l.ID]; dup {
				return nil, fmt.Errorf("module %s: duplicate lesson id %q", m.ID, l.ID)
			}
			c.lessons[l.ID] = l
			c.owners[l.ID] = m
		}
	}

	return c, nil
}

func checkLesson(l *Lesson) error {
	if l == nil {
		return fmt.Errorf("nil lesson")
	}
	if l.ID == "" {
		return fmt.Errorf("lesson %q: id is required", l.Title)
	}
	for i, q := range l.Quiz {
		if len(q.Options) < 2 {
			return fmt.Errorf("lesson %s: question %d has %d options, want at least 2", l.ID, i, len(q.Options))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("lesson %s: question %d answer %d out of range [0,%d)", l.ID, i, q.Answer, len(q.Options))
		}
	}
	return nil
}

// Title returns the course title shown above the sidebar.
func (c *Catalog) Title() string { return c.title }

// Welcome returns the placeholder text shown when no lesson is selected.
func (c *Catalog) Welcome() Welcome { return c.welcome }

// Version identifies the loaded content. Empty for catalogs built in code.
func (c *Catalog) Version() string { return c.version }

// Modules returns the modules in display order.
func (c *Catalog) Modules() []*Module {
	return append([]*Module(nil), c.modules...)
}

// Module returns a module by ID.
func (c *Catalog) Module(id string) (*Module, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Lesson returns a lesson by ID.
func (c *Catalog) Lesson(id string) (*Lesson, bool) {
	l, ok := c.lessons[id]
	return l, ok
}

// ModuleOf returns the module that contains the lesson with the given ID.
func (c *Catalog) ModuleOf(lessonID string) (*Module, bool) {
	m, ok := c.owners[lessonID]
	return m, ok
}

// FirstLesson returns the first lesson of the first module, if there is one.
func (c *Catalog) FirstLesson() (*Lesson, bool) {
	if len(c.modules) == 0 || len(c.modules[0].Lessons) == 0 {
		return nil, false
	}
	return c.modules[0].Lessons[0], true
}

// LessonCount returns the number of lessons across all modules.
func (c *Catalog) LessonCount() int {
	return len(c.lessons)
}
