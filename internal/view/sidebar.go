package view

import "github.com/p-n-ai/pai-course/internal/course"

// Sidebar lists the catalog's modules. It owns the set of expanded modules and
// forwards lesson selection to the root.
type Sidebar struct {
	catalog  *course.Catalog
	expanded map[string]bool
	current  func() *course.Lesson
	onSelect func(*course.Lesson)
	notify   func(Event)
}

// Modules returns the modules in display order.
func (s *Sidebar) Modules() []*course.Module { return s.catalog.Modules() }

// ToggleModule flips whether the module's lesson list is shown. Any number of
// modules may be expanded at once. Unknown ids are ignored; the result reports
// whether the id was known.
func (s *Sidebar) ToggleModule(id string) bool {
	if _, ok := s.catalog.Module(id); !ok {
		return false
	}
	if s.expanded[id] {
		delete(s.expanded, id)
	} else {
		s.expanded[id] = true
	}
	s.notify(Event{
		Kind:     EventModuleToggled,
		ModuleID: id,
		Expanded: s.expanded[id],
	})
	return true
}

// Expanded reports whether the module's lesson list is shown.
func (s *Sidebar) Expanded(id string) bool { return s.expanded[id] }

// ExpandedModules returns the expanded module ids in display order.
func (s *Sidebar) ExpandedModules() []string {
	var ids []string
	for _, m := range s.catalog.Modules() {
		if s.expanded[m.ID] {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// SelectLesson asks the root to display l. Expansion is not affected.
func (s *Sidebar) SelectLesson(l *course.Lesson) {
	s.onSelect(l)
}

// IsSelected reports whether l is the lesson currently displayed.
func (s *Sidebar) IsSelected(l *course.Lesson) bool {
	cur := s.current()
	return cur != nil && l != nil && cur.ID == l.ID
}
