package realtime

import (
	"sync"

	"github.com/agencydesk/agency-platform/internal/api/metrics"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// Subscriber receives task events for the rooms it joined. Deliver must not
// block: slow consumers buffer or drop on their own side.
type Subscriber interface {
	Deliver(event ports.TaskEvent)
}

// Hub maintains per-project rooms of subscribers. A subscriber may join any
// number of rooms; rooms exist only while they have at least one member.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Subscriber]struct{}
	// joined mirrors rooms from the subscriber's side so a disconnect can
	// tear down every membership without the caller tracking them.
	joined map[Subscriber]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[Subscriber]struct{}),
		joined: make(map[Subscriber]map[string]struct{}),
	}
}

// Subscribe adds sub to the project's room. Joining a room the subscriber is
// already in is a no-op.
func (h *Hub) Subscribe(projectID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[projectID]
	if !ok {
		room = make(map[Subscriber]struct{})
		h.rooms[projectID] = room
		metrics.RoomsActive.Inc()
	}
	room[sub] = struct{}{}

	memberships, ok := h.joined[sub]
	if !ok {
		memberships = make(map[string]struct{})
		h.joined[sub] = memberships
	}
	memberships[projectID] = struct{}{}
}

// Unsubscribe removes sub from the project's room, pruning the room when it
// empties. Leaving a room the subscriber is not in is a no-op.
func (h *Hub) Unsubscribe(projectID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(projectID, sub)
}

// Disconnect removes sub from every room it joined.
func (h *Hub) Disconnect(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for projectID := range h.joined[sub] {
		h.leave(projectID, sub)
	}
}

// leave assumes h.mu is held for writing.
func (h *Hub) leave(projectID string, sub Subscriber) {
	if room, ok := h.rooms[projectID]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, projectID)
			metrics.RoomsActive.Dec()
		}
	}
	if memberships, ok := h.joined[sub]; ok {
		delete(memberships, projectID)
		if len(memberships) == 0 {
			delete(h.joined, sub)
		}
	}
}

// Broadcast delivers the event to every current member of its project's
// room, best-effort. An event for a room with no members is discarded.
func (h *Hub) Broadcast(event ports.TaskEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.rooms[event.ProjectID] {
		sub.Deliver(event)
	}
}

// RoomCount reports the number of rooms with at least one subscriber.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
