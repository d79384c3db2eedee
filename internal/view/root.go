package view

import "github.com/p-n-ai/pai-course/internal/course"

// EventKind names an effective state transition.
type EventKind string

const (
	EventLessonSelected   EventKind = "lesson_selected"
	EventModuleToggled    EventKind = "module_toggled"
	EventQuizAnswered     EventKind = "quiz_answered"
	EventExerciseRevealed EventKind = "exercise_revealed"
)

// Event describes a transition that changed view state. No-op calls emit nothing.
type Event struct {
	Kind     EventKind
	ModuleID string
	LessonID string
	Index    int  // question or exercise index
	Option   int  // chosen option, for EventQuizAnswered
	Correct  bool // for EventQuizAnswered
	Expanded bool // for EventModuleToggled
}

// Option configures a Root.
type Option func(*Root)

// WithObserver registers fn to be called synchronously after every effective
// transition.
func WithObserver(fn func(Event)) Option {
	return func(r *Root) {
		r.observe = fn
	}
}

// Root is the top of one mounted view. It owns the lesson selection, starting
// at the first lesson of the first module, and rebuilds the lesson view
// whenever a different lesson is selected.
type Root struct {
	catalog  *course.Catalog
	selected *course.Lesson
	lesson   *LessonView
	sidebar  *Sidebar
	observe  func(Event)
}

// NewRoot creates the view state for a freshly mounted page.
func NewRoot(c *course.Catalog, opts ...Option) *Root {
	r := &Root{catalog: c}
	for _, opt := range opts {
		opt(r)
	}

	r.sidebar = &Sidebar{
		catalog:  c,
		expanded: make(map[string]bool),
		current:  func() *course.Lesson { return r.selected },
		onSelect: r.selectLesson,
		notify:   r.emit,
	}

	if first, ok := c.FirstLesson(); ok {
		r.selected = first
		r.lesson = newLessonView(first, r.emit)
	}
	return r
}

// Catalog returns the catalog the view displays.
func (r *Root) Catalog() *course.Catalog { return r.catalog }

// Sidebar returns the module sidebar.
func (r *Root) Sidebar() *Sidebar { return r.sidebar }

// Selected returns the selected lesson. It is absent only when the catalog has
// no first lesson, in which case the welcome placeholder is shown.
func (r *Root) Selected() (*course.Lesson, bool) {
	return r.selected, r.selected != nil
}

// LessonView returns the main panel for the selected lesson.
func (r *Root) LessonView() (*LessonView, bool) {
	return r.lesson, r.lesson != nil
}

// selectLesson switches the displayed lesson. Selecting the lesson already
// displayed keeps its quiz and exercise state.
func (r *Root) selectLesson(l *course.Lesson) {
	if l == nil || l == r.selected {
		return
	}
	r.selected = l
	r.lesson = newLessonView(l, r.emit)
	r.emit(Event{Kind: EventLessonSelected, LessonID: l.ID})
}

func (r *Root) emit(e Event) {
	if r.observe == nil {
		return
	}
	if e.ModuleID == "" && e.LessonID != "" {
		if m, ok := r.catalog.ModuleOf(e.LessonID); ok {
			e.ModuleID = m.ID
		}
	}
	r.observe(e)
}
