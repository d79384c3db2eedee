package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/p-n-ai/pai-course/internal/course"
	"github.com/p-n-ai/pai-course/internal/view"
)

// appData is the template model for one render of a live view.
type appData struct {
	Title   string
	Welcome course.Welcome
	Modules []moduleData
	Lesson  *lessonData
}

type moduleData struct {
	ID          string
	Title       string
	Description string
	Expanded    bool
	Lessons     []lessonLink
}

type lessonLink struct {
	ID       string
	Title    string
	Selected bool
}

type lessonData struct {
	Title     string
	Content   template.HTML
	Quiz      []questionData
	Exercises []exerciseData
}

type questionData struct {
	Index    int
	Question string
	Answered bool
	Options  []optionData
	Verdict  string
	Correct  bool
}

type optionData struct {
	Index  int
	Letter string
	Text   string
	Status string
}

type exerciseData struct {
	Index    int
	Scenario string
	Revealed bool
	Expected string
	Label    string
}

// snapshot captures the current state of r for rendering.
func snapshot(r *view.Root) appData {
	c := r.Catalog()
	sb := r.Sidebar()

	data := appData{
		Title:   c.Title(),
		Welcome: c.Welcome(),
	}

	for _, m := range sb.Modules() {
		md := moduleData{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Expanded:    sb.Expanded(m.ID),
		}
		for _, l := range m.Lessons {
			md.Lessons = append(md.Lessons, lessonLink{
				ID:       l.ID,
				Title:    l.Title,
				Selected: sb.IsSelected(l),
			})
		}
		data.Modules = append(data.Modules, md)
	}

	if lv, ok := r.LessonView(); ok {
		data.Lesson = lessonSnapshot(lv)
	}
	return data
}

func lessonSnapshot(lv *view.LessonView) *lessonData {
	l := lv.Lesson()
	ld := &lessonData{
		Title: l.Title,
		// Lesson bodies are author-controlled content compiled into the binary.
		Content: template.HTML(l.Content),
	}

	for i, q := range lv.Quizzes() {
		qd := questionData{Index: i, Question: q.Question().Question}
		for k, text := range q.Question().Options {
			qd.Options = append(qd.Options, optionData{
				Index:  k,
				Letter: course.OptionLetter(k),
				Text:   text,
				Status: q.OptionStatus(k).String(),
			})
		}
		if v, ok := q.Verdict(); ok {
			qd.Answered = true
			qd.Verdict = v.String()
			qd.Correct = v.Correct
		}
		ld.Quiz = append(ld.Quiz, qd)
	}

	for i, ex := range lv.Exercises() {
		ed := exerciseData{
			Index:    i,
			Scenario: ex.Item().Scenario,
			Revealed: ex.Revealed(),
			Label:    ex.ButtonLabel(),
		}
		if ex.Revealed() {
			ed.Expected = ex.Item().ExpectedCommand
		}
		ld.Exercises = append(ld.Exercises, ed)
	}
	return ld
}

// renderApp renders the application markup that the live view swaps in.
func (s *Server) renderApp(r *view.Root) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "app", snapshot(r)); err != nil {
		return "", fmt.Errorf("rendering app: %w", err)
	}
	return buf.String(), nil
}
