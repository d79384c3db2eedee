package view

import "github.com/p-n-ai/pai-course/internal/course"

// LessonView is the main panel for one lesson. Its quiz and exercise state is
// created fresh with the view and discarded when another lesson is selected.
type LessonView struct {
	lesson    *course.Lesson
	quizzes   []*QuizControl
	exercises []*ExerciseControl
	notify    func(Event)
}

// NewLessonView builds a view of l with every question unanswered and every
// exercise hidden.
func NewLessonView(l *course.Lesson) *LessonView {
	return newLessonView(l, nil)
}

func newLessonView(l *course.Lesson, notify func(Event)) *LessonView {
	v := &LessonView{
		lesson:    l,
		quizzes:   make([]*QuizControl, len(l.Quiz)),
		exercises: make([]*ExerciseControl, len(l.Exercises)),
		notify:    notify,
	}
	for i := range l.Quiz {
		v.quizzes[i] = newQuizControl(&l.Quiz[i])
	}
	for i := range l.Exercises {
		v.exercises[i] = newExerciseControl(&l.Exercises[i])
	}
	return v
}

// Lesson returns the displayed lesson.
func (v *LessonView) Lesson() *course.Lesson { return v.lesson }

// Quizzes returns one control per quiz question, in lesson order.
func (v *LessonView) Quizzes() []*QuizControl { return v.quizzes }

// Exercises returns one control per exercise, in lesson order.
func (v *LessonView) Exercises() []*ExerciseControl { return v.exercises }

// Quiz returns the control for question i.
func (v *LessonView) Quiz(i int) (*QuizControl, bool) {
	if i < 0 || i >= len(v.quizzes) {
		return nil, false
	}
	return v.quizzes[i], true
}

// Exercise returns the control for exercise i.
func (v *LessonView) Exercise(i int) (*ExerciseControl, bool) {
	if i < 0 || i >= len(v.exercises) {
		return nil, false
	}
	return v.exercises[i], true
}

// SelectOption answers question i with ch. The first answer wins; later calls
// are no-ops. It reports whether the state changed.
func (v *LessonView) SelectOption(i int, ch Choice) bool {
	q, ok := v.Quiz(i)
	if !ok || !q.Select(ch) {
		return false
	}
	verdict, _ := q.Verdict()
	v.emit(Event{
		Kind:     EventQuizAnswered,
		LessonID: v.lesson.ID,
		Index:    i,
		Option:   ch.Index(),
		Correct:  verdict.Correct,
	})
	return true
}

// Reveal shows the expected answer of exercise i. It reports whether the state changed.
func (v *LessonView) Reveal(i int) bool {
	ex, ok := v.Exercise(i)
	if !ok || !ex.Reveal() {
		return false
	}
	v.emit(Event{
		Kind:     EventExerciseRevealed,
		LessonID: v.lesson.ID,
		Index:    i,
	})
	return true
}

func (v *LessonView) emit(e Event) {
	if v.notify != nil {
		v.notify(e)
	}
}
