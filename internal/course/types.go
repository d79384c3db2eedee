package course

// QuizQuestion is a single-choice question with exactly one correct option.
type QuizQuestion struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Answer   int      `yaml:"answer"`
}

// CorrectOption returns the text of the correct option.
func (q *QuizQuestion) CorrectOption() string {
	return q.Options[q.Answer]
}

// ExerciseItem pairs a scenario with the expected command(s) revealed on demand.
type ExerciseItem struct {
	Scenario        string `yaml:"scenario"`
	ExpectedCommand string `yaml:"expected_command"`
}

// Lesson is one unit of content. Content is trusted HTML written by the course author.
type Lesson struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Content   string         `yaml:"content"`
	Quiz      []QuizQuestion `yaml:"quiz"`
	Exercises []ExerciseItem `yaml:"exercises"`
}

// Module is a named, ordered group of lessons.
type Module struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Lessons     []*Lesson `yaml:"lessons"`
}

// Welcome is shown in place of a lesson when the catalog has nothing to select.
type Welcome struct {
	Heading string `yaml:"heading"`
	Message string `yaml:"message"`
}

// courseDoc is the top-level course.yaml document.
type courseDoc struct {
	Title   string  `yaml:"title"`
	Welcome Welcome `yaml:"welcome"`
}
