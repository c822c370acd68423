package chathub

import "sync"

// Session is a live connection's claim to a (user, room) identity. It exists
// from a successful joinRoom until the connection leaves or drops.
type Session struct {
	ConnID   string
	UserID   string
	CoupleID string
}

// roomState is the derived per-room bookkeeping: which clients receive
// broadcasts and how many live sessions each user holds there. It is created
// on first join and garbage-collected when the last connection leaves.
type roomState struct {
	users map[string]int
	conns map[string]Client
}

// Registry is the in-memory connection↔user↔room mapping. All methods take a
// short critical section and never call out while holding the lock, so hub
// handlers are free to block on storage or push I/O between registry calls.
type Registry struct {
	mu       sync.RWMutex
	clients  map[string]Client
	sessions map[string]Session
	rooms    map[string]*roomState
}

func NewRegistry() *Registry {
	return &Registry{
		clients:  make(map[string]Client),
		sessions: make(map[string]Session),
		rooms:    make(map[string]*roomState),
	}
}

// Register makes a connection known to the registry. The connection stays
// roomless until it joins.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID()] = c
}

// Unregister forgets a connection entirely. Leave must run first if the
// connection held a session.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, connID)
}

// Join records a session for the connection and adds it to the room. A
// connection holds at most one session: any prior mapping for connID is
// released first. cameOnline reports whether this join made the user visible
// in the room (their first live session there). ok is false when the
// connection was never registered.
func (r *Registry) Join(connID, userID, coupleID string) (cameOnline bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, known := r.clients[connID]
	if !known {
		return false, false
	}
	r.leaveLocked(connID)

	room := r.rooms[coupleID]
	if room == nil {
		room = &roomState{
			users: make(map[string]int),
			conns: make(map[string]Client),
		}
		r.rooms[coupleID] = room
	}

	r.sessions[connID] = Session{ConnID: connID, UserID: userID, CoupleID: coupleID}
	room.conns[connID] = client
	room.users[userID]++
	return room.users[userID] == 1, true
}

// Leave removes the connection's session if it has one. wentOffline reports
// whether this was the user's last session in the room. Unknown connections
// are a no-op.
func (r *Registry) Leave(connID string) (sess Session, wentOffline bool, had bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(connID)
}

func (r *Registry) leaveLocked(connID string) (sess Session, wentOffline bool, had bool) {
	sess, had = r.sessions[connID]
	if !had {
		return Session{}, false, false
	}
	delete(r.sessions, connID)

	room := r.rooms[sess.CoupleID]
	if room == nil {
		return sess, false, true
	}
	delete(room.conns, connID)
	if room.users[sess.UserID] > 0 {
		room.users[sess.UserID]--
	}
	if room.users[sess.UserID] == 0 {
		delete(room.users, sess.UserID)
		wentOffline = true
	}
	if len(room.conns) == 0 {
		delete(r.rooms, sess.CoupleID)
	}
	return sess, wentOffline, true
}

// SessionOf returns the session currently held by the connection, if any.
func (r *Registry) SessionOf(connID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[connID]
	return sess, ok
}

// OnlineUsers returns the distinct user IDs with at least one live session in
// the room. Unknown rooms yield an empty slice.
func (r *Registry) OnlineUsers(coupleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[coupleID]
	if room == nil {
		return nil
	}
	users := make([]string, 0, len(room.users))
	for userID := range room.users {
		users = append(users, userID)
	}
	return users
}

// RoomClients returns a snapshot of the room's clients, safe to range over
// after the lock is released.
func (r *Registry) RoomClients(coupleID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[coupleID]
	if room == nil {
		return nil
	}
	clients := make([]Client, 0, len(room.conns))
	for _, c := range room.conns {
		clients = append(clients, c)
	}
	return clients
}

// ClientByID returns the registered client for a connection ID.
func (r *Registry) ClientByID(connID string) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[connID]
	return c, ok
}
