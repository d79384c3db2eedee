package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types the sinks understand.
const (
	TypeLessonSelected   = "lesson_selected"
	TypeModuleToggled    = "module_toggled"
	TypeQuizAnswered     = "quiz_answered"
	TypeExerciseRevealed = "exercise_revealed"
)

// Data keys carried by events.
const (
	KeyQuestion = "question"
	KeyOption   = "option"
	KeyCorrect  = "correct"
	KeyExercise = "exercise"
	KeyExpanded = "expanded"
)

const defaultKeyPrefix = "course"

// RedisSink keeps running counters per lesson in Redis hashes:
//
//	<prefix>:lessons                      lesson id -> times opened
//	<prefix>:quiz:<lesson>:<question>     correct / incorrect -> answers
//	<prefix>:reveals:<lesson>             exercise index -> reveals
type RedisSink struct {
	client *redis.Client
	prefix string
}

// NewRedisSink creates a counter sink. An empty prefix defaults to "course".
func NewRedisSink(client *redis.Client, prefix string) *RedisSink {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisSink{client: client, prefix: prefix}
}

func (s *RedisSink) LogEvent(event Event) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("event sink client is nil")
	}

	key, field, ok := s.counter(event)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.client.HIncrBy(ctx, key, field, 1).Err(); err != nil {
		return fmt.Errorf("incrementing %s %s: %w", key, field, err)
	}
	return nil
}

// QuizCounts returns how many answers to a question were correct and incorrect.
func (s *RedisSink) QuizCounts(ctx context.Context, lessonID string, question int) (correct, incorrect int64, err error) {
	vals, err := s.client.HGetAll(ctx, s.QuizKey(lessonID, question)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("reading quiz counts: %w", err)
	}
	correct, _ = strconv.ParseInt(vals["correct"], 10, 64)
	incorrect, _ = strconv.ParseInt(vals["incorrect"], 10, 64)
	return correct, incorrect, nil
}

// QuizKey returns the hash key for a question's answer counters.
func (s *RedisSink) QuizKey(lessonID string, question int) string {
	return fmt.Sprintf("%s:quiz:%s:%d", s.prefix, lessonID, question)
}

// counter maps an event to the hash field it increments.
func (s *RedisSink) counter(event Event) (key, field string, ok bool) {
	switch event.EventType {
	case TypeLessonSelected:
		if event.LessonID == "" {
			return "", "", false
		}
		return s.prefix + ":lessons", event.LessonID, true

	case TypeQuizAnswered:
		q, okQ := event.Data[KeyQuestion].(int)
		correct, okC := event.Data[KeyCorrect].(bool)
		if !okQ || !okC {
			return "", "", false
		}
		field = "incorrect"
		if correct {
			field = "correct"
		}
		return s.QuizKey(event.LessonID, q), field, true

	case TypeExerciseRevealed:
		i, okI := event.Data[KeyExercise].(int)
		if !okI {
			return "", "", false
		}
		return fmt.Sprintf("%s:reveals:%s", s.prefix, event.LessonID), strconv.Itoa(i), true
	}
	return "", "", false
}
