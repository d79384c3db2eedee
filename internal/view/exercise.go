package view

import "github.com/p-n-ai/pai-course/internal/course"

// ExerciseControl hides an exercise's expected answer until it is revealed.
// Revealing is one-way.
type ExerciseControl struct {
	item     *course.ExerciseItem
	revealed bool
}

func newExerciseControl(item *course.ExerciseItem) *ExerciseControl {
	return &ExerciseControl{item: item}
}

// Item returns the exercise this control displays.
func (e *ExerciseControl) Item() *course.ExerciseItem { return e.item }

// Revealed reports whether the expected answer is shown.
func (e *ExerciseControl) Revealed() bool { return e.revealed }

// Reveal shows the expected answer. It reports whether the state changed.
func (e *ExerciseControl) Reveal() bool {
	if e.revealed {
		return false
	}
	e.revealed = true
	return true
}

// ButtonLabel returns the label of the reveal button.
func (e *ExerciseControl) ButtonLabel() string {
	if e.revealed {
		return "Answer Shown"
	}
	return "Show Answer"
}
