// Package session is the in-process registry for the work units shown in
// panes. It hands out opaque, stable ids and tracks a session's textual
// identity (title, command, working directory); what a session actually
// runs belongs to the backend and is none of the layout core's business.
package session

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session is one registered work unit. The ID is unique across the whole
// process and never reused.
type Session struct {
	ID        string
	Title     string
	Command   string
	Dir       string
	CreatedAt time.Time
}

// Registry owns all live sessions. Closed sessions are announced on the
// exit channel so the UI loop can retire their panes, mirroring how a
// backend would report a terminated process.
//
// Registry is not safe for concurrent use; the UI event loop is its single
// caller.
type Registry struct {
	sessions map[string]*Session
	exits    chan string
}

// NewRegistry creates an empty registry. The exit channel is buffered so
// closing a session never blocks on a slow listener.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		exits:    make(chan string, 64),
	}
}

// Create registers a new session and returns it. An empty title falls back
// to the command name.
func (r *Registry) Create(title, command, dir string) *Session {
	if title == "" {
		title = command
	}
	s := &Session{
		ID:        uuid.NewString(),
		Title:     title,
		Command:   command,
		Dir:       dir,
		CreatedAt: time.Now(),
	}
	r.sessions[s.ID] = s
	return s
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

// Rename changes a session's title. Returns false for unknown ids.
func (r *Registry) Rename(id, title string) bool {
	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	s.Title = title
	return true
}

// Close unregisters a session and announces it on the exit channel.
// Returns false for unknown ids.
func (r *Registry) Close(id string) bool {
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	select {
	case r.exits <- id:
	default:
		// Listener has fallen far behind; dropping the notification is
		// harmless because removal everywhere else is idempotent.
	}
	return true
}

// Exits returns the channel on which closed session ids are announced.
func (r *Registry) Exits() <-chan string {
	return r.exits
}

// List returns all live sessions in creation order.
func (r *Registry) List() []*Session {
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	return len(r.sessions)
}
