// Package view holds the state of one mounted course view: which lesson is
// selected, which sidebar modules are expanded, and the answer/reveal state of
// the displayed lesson's quiz questions and exercises.
//
// A view is single-threaded: its owner applies one action at a time and every
// transition completes synchronously.
package view

import (
	"fmt"

	"github.com/p-n-ai/pai-course/internal/course"
)

// QuizState is either Unanswered or Answered(k). The zero value is Unanswered.
type QuizState struct {
	answered bool
	choice   int
}

// Answered returns the chosen option index and true once the question is answered.
func (s QuizState) Answered() (int, bool) {
	return s.choice, s.answered
}

func (s QuizState) String() string {
	if !s.answered {
		return "Unanswered"
	}
	return fmt.Sprintf("Answered(%d)", s.choice)
}

// Choice is an option of a specific question. It can only be obtained from
// QuizControl.Choice, so it always refers to an existing option.
type Choice struct {
	question *course.QuizQuestion
	index    int
}

// Index returns the option index.
func (c Choice) Index() int { return c.index }

// OptionStatus describes how a single option is presented.
type OptionStatus int

const (
	OptionOpen      OptionStatus = iota // question unanswered, option selectable
	OptionLocked                        // question answered with another option
	OptionCorrect                       // chosen, and it is the answer
	OptionIncorrect                     // chosen, and it is not the answer
)

func (s OptionStatus) String() string {
	switch s {
	case OptionOpen:
		return "open"
	case OptionLocked:
		return "locked"
	case OptionCorrect:
		return "correct"
	case OptionIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Verdict is the feedback shown once a question has been answered.
type Verdict struct {
	Correct bool
	Answer  string // text of the correct option
}

func (v Verdict) String() string {
	if v.Correct {
		return "Correct ✅"
	}
	return "Incorrect ❌. Correct answer: " + v.Answer
}

// QuizControl holds the answer state of one question. Once answered it is locked.
type QuizControl struct {
	question *course.QuizQuestion
	state    QuizState
}

func newQuizControl(q *course.QuizQuestion) *QuizControl {
	return &QuizControl{question: q}
}

// Question returns the question this control displays.
func (c *QuizControl) Question() *course.QuizQuestion { return c.question }

// State returns the current answer state.
func (c *QuizControl) State() QuizState { return c.state }

// Choice returns the option at index k, or false if k is not an option of this question.
func (c *QuizControl) Choice(k int) (Choice, bool) {
	if k < 0 || k >= len(c.question.Options) {
		return Choice{}, false
	}
	return Choice{question: c.question, index: k}, true
}

// Select records ch as the answer. It reports whether the state changed: an
// answered question, or a choice issued for another question, is left untouched.
func (c *QuizControl) Select(ch Choice) bool {
	if c.state.answered || ch.question != c.question {
		return false
	}
	c.state = QuizState{answered: true, choice: ch.index}
	return true
}

// Verdict returns the feedback for the recorded answer, if any.
func (c *QuizControl) Verdict() (Verdict, bool) {
	k, ok := c.state.Answered()
	if !ok {
		return Verdict{}, false
	}
	return Verdict{
		Correct: k == c.question.Answer,
		Answer:  c.question.CorrectOption(),
	}, true
}

// OptionStatus returns how option k is presented.
func (c *QuizControl) OptionStatus(k int) OptionStatus {
	chosen, ok := c.state.Answered()
	switch {
	case !ok:
		return OptionOpen
	case k != chosen:
		return OptionLocked
	case k == c.question.Answer:
		return OptionCorrect
	default:
		return OptionIncorrect
	}
}
