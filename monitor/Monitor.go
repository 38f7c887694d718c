// Package monitor publishes per-episode training summaries to web
// clients over websocket. A Hub is a tracker.Tracker, so it can be
// registered with any experiment to watch training live.
package monitor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"
	ts "github.com/samuelfneumann/tabular/timestep"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 1 * time.Second

	// Pings are sent to each client at this period
	pingPeriod = 5 * time.Second

	// Number of summaries buffered per client. Summaries published to
	// a client with a full buffer are dropped.
	clientBuffer = 64
)

var upgrader = websocket.Upgrader{}

var errClientGone = errors.New("client disconnected")

// Summary summarizes a single finished episode
type Summary struct {
	Episode int
	Return  float64
	Length  int
}

// Hub tracks experiment timesteps and broadcasts a Summary of every
// finished episode to all connected clients
type Hub struct {
	mu      sync.Mutex
	clients map[chan Summary]struct{}
	closed  bool

	episode       int
	episodeReturn float64
}

// NewHub returns a new Hub without any clients
func NewHub() *Hub {
	return &Hub{clients: make(map[chan Summary]struct{})}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Track implements the tracker.Tracker interface. When the last
// timestep of an episode is tracked, a Summary of the episode is
// published.
func (h *Hub) Track(step ts.TimeStep) {
	h.episodeReturn += step.Reward
	if !step.Last() {
		return
	}

	h.publish(Summary{
		Episode: h.episode,
		Return:  h.episodeReturn,
		Length:  step.Number,
	})
	h.episode++
	h.episodeReturn = 0
}

// publish sends s to each client without blocking
func (h *Hub) publish(s Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for updates := range h.clients {
		select {
		case updates <- s:
		default:
			glog.V(1).Infof("monitor: dropped summary of episode %d",
				s.Episode)
		}
	}
}

// Save implements the tracker.Tracker interface. Save disconnects all
// clients, after which no new clients are accepted.
func (h *Hub) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for updates := range h.clients {
		close(updates)
		delete(h.clients, updates)
	}
	h.closed = true
	return nil
}

// register adds a new client, returning false if the Hub is closed
func (h *Hub) register() (chan Summary, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}
	updates := make(chan Summary, clientBuffer)
	h.clients[updates] = struct{}{}
	return updates, true
}

// unregister removes a client if it is still registered
func (h *Hub) unregister(updates chan Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[updates]; ok {
		close(updates)
		delete(h.clients, updates)
	}
}

// ServeHTTP upgrades the request to a websocket and streams summaries
// to it until either the client disconnects or the Hub is saved
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	updates, ok := h.register()
	if !ok {
		http.Error(w, "monitor closed", http.StatusServiceUnavailable)
		return
	}
	defer h.unregister(updates)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("monitor: upgrade failed: %v", err)
		return
	}
	glog.Infof("monitor: client %v connected", r.RemoteAddr)

	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() error {
		return readMessages(conn)
	})
	group.Go(func() error {
		defer conn.Close()
		return publish(ctx, conn, updates)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errClientGone) {
		glog.Warningf("monitor: client %v: %v", r.RemoteAddr, err)
	}
	glog.Infof("monitor: client %v disconnected", r.RemoteAddr)
}

// readMessages discards messages from the client so that control
// messages are processed. Any read error means the connection is gone.
func readMessages(conn *websocket.Conn) error {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return errClientGone
		}
	}
}

// publish writes summaries to the client until updates is closed or
// ctx is done
func publish(ctx context.Context, conn *websocket.Conn,
	updates <-chan Summary) error {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ping.C:
			deadline := time.Now().Add(writeWait)
			if err := conn.WriteControl(websocket.PingMessage, nil,
				deadline); err != nil {
				return err
			}

		case s, ok := <-updates:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure,
					"training finished")
				return conn.WriteMessage(websocket.CloseMessage, msg)
			}
			if err := conn.WriteJSON(s); err != nil {
				return err
			}
		}
	}
}
