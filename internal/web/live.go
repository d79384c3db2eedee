package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pai-course/internal/events"
	"github.com/p-n-ai/pai-course/internal/view"
)

const maxActionSize = 4 << 10

// Action names accepted over a live connection.
const (
	ActionSelectLesson = "select_lesson"
	ActionToggleModule = "toggle_module"
	ActionSelectOption = "select_option"
	ActionReveal       = "reveal"
)

// Action is one user interaction sent by the browser.
type Action struct {
	Action   string `json:"action"`
	Lesson   string `json:"lesson,omitempty"`
	Module   string `json:"module,omitempty"`
	Question *int   `json:"question,omitempty"`
	Option   *int   `json:"option,omitempty"`
	Exercise *int   `json:"exercise,omitempty"`
}

// Frame is one server message: re-rendered markup or an error.
type Frame struct {
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	// Live connections outlive the server's request timeouts.
	rc := http.NewResponseController(w)
	rc.SetReadDeadline(time.Time{})
	rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		slog.Warn("live view rejected", "remote", r.RemoteAddr, "error", err)
		return
	}
	conn.SetReadLimit(maxActionSize)

	id := s.registry.Add(conn)
	slog.Info("live view mounted", "view_id", id, "views", s.registry.Count())

	err = s.serveLive(r.Context(), id, conn)

	mounted, _ := s.registry.Remove(id)
	switch status := websocket.CloseStatus(err); {
	case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
		conn.Close(websocket.StatusNormalClosure, "")
	case err != nil && !errors.Is(err, context.Canceled):
		slog.Warn("live view ended", "view_id", id, "error", err)
		conn.Close(websocket.StatusInternalError, "live view ended")
	default:
		conn.CloseNow()
	}
	slog.Info("live view unmounted", "view_id", id, "duration", mounted.Round(time.Millisecond))
}

// serveLive runs one mounted view until the connection ends. Actions are read
// and applied one at a time on this goroutine.
func (s *Server) serveLive(ctx context.Context, id string, conn *websocket.Conn) error {
	root := view.NewRoot(s.catalog, view.WithObserver(func(e view.Event) {
		s.publish(id, e)
	}))

	if err := s.push(ctx, conn, root); err != nil {
		return err
	}

	for {
		a, err := s.readAction(ctx, conn)
		if err != nil {
			var bad *actionError
			if !errors.As(err, &bad) {
				return err
			}
			slog.Warn("rejected live action", "view_id", id, "error", bad)
			if err := wsjson.Write(ctx, conn, Frame{Error: bad.Error()}); err != nil {
				return err
			}
			continue
		}

		if err := Apply(root, a); err != nil {
			slog.Warn("rejected live action", "view_id", id, "action", a.Action, "error", err)
			if err := wsjson.Write(ctx, conn, Frame{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}

		if err := s.push(ctx, conn, root); err != nil {
			return err
		}
	}
}

// actionError marks a message that could not be decoded into an Action.
type actionError struct{ msg string }

func (e *actionError) Error() string { return e.msg }

func (s *Server) readAction(ctx context.Context, conn *websocket.Conn) (Action, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.idleTimeout)
	defer cancel()

	typ, data, err := conn.Read(readCtx)
	if err != nil {
		return Action{}, err
	}
	if typ != websocket.MessageText {
		return Action{}, &actionError{msg: "expected a text message"}
	}

	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, &actionError{msg: fmt.Sprintf("malformed action: %v", err)}
	}
	return a, nil
}

func (s *Server) push(ctx context.Context, conn *websocket.Conn, root *view.Root) error {
	html, err := s.renderApp(root)
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, conn, Frame{HTML: html})
}

// Apply performs one action on a view. Actions that do not map to a lesson,
// module, question or exercise return an error and leave the view unchanged.
func Apply(root *view.Root, a Action) error {
	switch a.Action {
	case ActionSelectLesson:
		l, ok := root.Catalog().Lesson(a.Lesson)
		if !ok {
			return fmt.Errorf("unknown lesson %q", a.Lesson)
		}
		root.Sidebar().SelectLesson(l)

	case ActionToggleModule:
		if !root.Sidebar().ToggleModule(a.Module) {
			return fmt.Errorf("unknown module %q", a.Module)
		}

	case ActionSelectOption:
		if a.Question == nil || a.Option == nil {
			return fmt.Errorf("select_option needs question and option")
		}
		lv, ok := root.LessonView()
		if !ok {
			return fmt.Errorf("no lesson selected")
		}
		q, ok := lv.Quiz(*a.Question)
		if !ok {
			return fmt.Errorf("question %d out of range", *a.Question)
		}
		ch, ok := q.Choice(*a.Option)
		if !ok {
			return fmt.Errorf("option %d out of range", *a.Option)
		}
		lv.SelectOption(*a.Question, ch)

	case ActionReveal:
		if a.Exercise == nil {
			return fmt.Errorf("reveal needs exercise")
		}
		lv, ok := root.LessonView()
		if !ok {
			return fmt.Errorf("no lesson selected")
		}
		if _, ok := lv.Exercise(*a.Exercise); !ok {
			return fmt.Errorf("exercise %d out of range", *a.Exercise)
		}
		lv.Reveal(*a.Exercise)

	default:
		return fmt.Errorf("unknown action %q", a.Action)
	}
	return nil
}

func (s *Server) publish(viewID string, e view.Event) {
	if s.events == nil {
		return
	}
	s.events.Publish(toEvent(viewID, s.catalog.Version(), e))
}

// toEvent converts a view transition into an analytics record.
func toEvent(viewID, version string, e view.Event) events.Event {
	ev := events.Event{
		ViewID:         viewID,
		EventType:      string(e.Kind),
		ModuleID:       e.ModuleID,
		LessonID:       e.LessonID,
		CatalogVersion: version,
		CreatedAt:      time.Now(),
	}
	switch e.Kind {
	case view.EventQuizAnswered:
		ev.Data = map[string]any{
			events.KeyQuestion: e.Index,
			events.KeyOption:   e.Option,
			events.KeyCorrect:  e.Correct,
		}
	case view.EventExerciseRevealed:
		ev.Data = map[string]any{events.KeyExercise: e.Index}
	case view.EventModuleToggled:
		ev.Data = map[string]any{events.KeyExpanded: e.Expanded}
	}
	return ev
}
