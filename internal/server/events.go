package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/five82/backdrop/internal/store"
	"github.com/five82/backdrop/internal/style"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventMessage is one frame of the /api/events stream. The first frame has
// Origin "snapshot" and describes the state at connect time.
type EventMessage struct {
	Origin string            `json:"origin"`
	Seq    uint64            `json:"seq"`
	Event  store.Event       `json:"event"`
	Style  style.Declaration `json:"style"`
}

const (
	eventBuffer = 32
	pingPeriod  = 30 * time.Second
	writeWait   = 5 * time.Second
)

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// All writes happen on this goroutine; gorilla/websocket allows only one
	// concurrent writer.
	write := func(fn func() error) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return fn()
	}

	out := make(chan store.Event, eventBuffer)
	cancel := s.prefs.Subscribe(func(ev store.Event) {
		select {
		case out <- ev:
		default:
			s.logger.Warn("dropping preference event for slow websocket client", "seq", ev.Seq)
		}
	})
	defer cancel()

	snapshot := EventMessage{
		Origin: "snapshot",
		Event:  store.Event{State: s.prefs.State()},
		Style:  s.prefs.Style(),
	}
	if err := write(func() error { return conn.WriteJSON(snapshot) }); err != nil {
		return
	}

	// Reader: only needed to notice the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var lastSeq uint64
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ping.C:
			if err := write(func() error { return conn.WriteMessage(websocket.PingMessage, nil) }); err != nil {
				return
			}
		case ev := <-out:
			if ev.Seq <= lastSeq {
				continue
			}
			lastSeq = ev.Seq
			msg := EventMessage{
				Origin: string(ev.Origin),
				Seq:    ev.Seq,
				Event:  ev,
				Style:  style.Compiler{Logger: s.logger}.Compile(ev.State.Current()),
			}
			if err := write(func() error { return conn.WriteJSON(msg) }); err != nil {
				return
			}
		}
	}
}
