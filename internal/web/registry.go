package web

import (
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// liveView is one open live connection and its mount time.
type liveView struct {
	ID        string
	conn      *websocket.Conn
	StartedAt time.Time
}

// Registry tracks open live views so shutdown can close them.
type Registry struct {
	views map[string]*liveView
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*liveView),
	}
}

// Add registers a connection and returns its view id.
func (r *Registry) Add(conn *websocket.Conn) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.views[id] = &liveView{ID: id, conn: conn, StartedAt: time.Now()}
	return id
}

// Remove forgets a view. It reports how long the view was mounted.
func (r *Registry) Remove(id string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[id]
	if !ok {
		return 0, false
	}
	delete(r.views, id)
	return time.Since(v.StartedAt), true
}

// Count returns the number of open views.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// CloseAll closes every open connection with a going-away status.
func (r *Registry) CloseAll(reason string) int {
	r.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(r.views))
	for _, v := range r.views {
		conns = append(conns, v.conn)
	}
	r.mu.RUnlock()

	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Go(func() {
			c.Close(websocket.StatusGoingAway, reason)
		})
	}
	wg.Wait()
	return len(conns)
}

