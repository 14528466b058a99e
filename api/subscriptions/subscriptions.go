// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/rico/api/logs"
	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/logdb"
	"github.com/vechain/rico/runtime"
	"github.com/vechain/rico/thor"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 30 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10

	// records buffered per subscriber before it starts missing them
	bufferSize = 64
)

type Subscriptions struct {
	feed     *runtime.Feed
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(feed *runtime.Feed, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		feed: feed,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	var participant *thor.Address
	if v := req.URL.Query().Get("participant"); v != "" {
		addr, err := thor.ParseAddress(v)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "participant"))
		}
		participant = &addr
	}
	var types []logdb.EventType
	if v := req.URL.Query().Get("type"); v != "" {
		var typ logdb.EventType
		if err := typ.UnmarshalText([]byte(v)); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "type"))
		}
		types = append(types, typ)
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	if err := s.pipe(conn, func(ev *logdb.Event) bool {
		if participant != nil && ev.Participant != *participant {
			return false
		}
		return len(types) == 0 || slices.Contains(types, ev.Type)
	}); err != nil {
		logger.Debug("subscription closed", "err", err)
	}
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, match func(*logdb.Event) bool) error {
	ch := make(chan *runtime.Record, bufferSize)
	s.feed.Subscribe(ch)
	defer s.feed.Unsubscribe(ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case rec := <-ch:
			for _, ev := range rec.Events {
				if !match(ev) {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(logs.ConvertEvent(ev)); err != nil {
					return err
				}
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "service shutdown")
			return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		}
	}
}

// Close closes all subscriptions, they run on hijacked connections the http server does not track.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
