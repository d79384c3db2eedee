package view_test

import (
	"testing"

	"github.com/p-n-ai/pai-course/internal/course"
	"github.com/p-n-ai/pai-course/internal/view"
)

func testCatalog(t *testing.T) *course.Catalog {
	t.Helper()

	c, err := course.NewCatalog("Docker Course", course.Welcome{Heading: "Welcome"}, []*course.Module{
		{
			ID:    "mod-01",
			Title: "Docker Fundamentals",
			Lessons: []*course.Lesson{
				{
					ID:      "fund-1",
					Title:   "Introduction to Docker",
					Content: "<p>Docker</p>",
					Quiz: []course.QuizQuestion{
						{Question: "Pick B", Options: []string{"A", "B", "C", "D"}, Answer: 1},
						{Question: "Pick yes", Options: []string{"yes", "no"}, Answer: 0},
					},
					Exercises: []course.ExerciseItem{
						{Scenario: "Check the version.", ExpectedCommand: "docker --version"},
					},
				},
				{
					ID:      "fund-2",
					Title:   "Docker Architecture",
					Content: "<p>Engine</p>",
				},
			},
		},
		{
			ID:    "mod-02",
			Title: "Docker Images",
			Lessons: []*course.Lesson{
				{
					ID:    "img-01",
					Title: "Introduction to Docker Images",
					Quiz: []course.QuizQuestion{
						{Question: "Images are", Options: []string{"mutable", "read-only"}, Answer: 1},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func mustLesson(t *testing.T, c *course.Catalog, id string) *course.Lesson {
	t.Helper()
	l, ok := c.Lesson(id)
	if !ok {
		t.Fatalf("Lesson(%s) not found", id)
	}
	return l
}

func mustChoice(t *testing.T, q *view.QuizControl, k int) view.Choice {
	t.Helper()
	ch, ok := q.Choice(k)
	if !ok {
		t.Fatalf("Choice(%d) not available", k)
	}
	return ch
}

// recorder collects observed events.
type recorder struct {
	events []view.Event
}

func (r *recorder) observe(e view.Event) {
	r.events = append(r.events, e)
}
