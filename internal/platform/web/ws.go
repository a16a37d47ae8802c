package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/match"
)

const writeWait = 5 * time.Second

// handlePlay upgrades to a websocket and runs one session for the
// connection. ?mode= and ?rule= start a mode right away; otherwise the
// client sends start_mode itself.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var start *core.StartMode
	if q := r.URL.Query().Get("mode"); q != "" {
		ev, err := ClientMessage{Type: "start_mode", Mode: q, Rule: r.URL.Query().Get("rule")}.Event()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_mode")
			return
		}
		sm := ev.(core.StartMode)
		start = &sm
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	rc := match.RunnerConfig{Rules: s.cfg.Rules, Logger: s.logger}
	if s.cfg.Store != nil {
		rc.Saver = s.cfg.Store
		rc.Scores = s.cfg.Store
	}
	runner := match.NewRunner(rc)
	sessionID := match.SessionID(fmt.Sprintf("ws-%s", runner.ID()))
	sub := match.NewSubscriber(sessionID, 0)
	runner.Subscribe(sub)
	s.registry.Register(sessionID, runner)
	s.logger.Info("websocket session started", "session", sessionID, "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		runner.Unsubscribe(sessionID)
		sub.Close()
		s.registry.Unregister(sessionID)
		s.logger.Info("websocket session ended", "session", sessionID)
	}()
	go runner.Run(ctx) //nolint:errcheck // ends with ctx.Err() on disconnect

	if start != nil {
		runner.Send(*start)
	}

	// gorilla allows one concurrent writer; all writes go through here.
	errs := make(chan string, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(conn, sub, errs)
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		ev, err := msg.Event()
		if err != nil {
			select {
			case errs <- err.Error():
			default:
			}
			continue
		}
		if !runner.Send(ev) {
			break
		}
	}

	sub.Close()
	<-writerDone
}

func (s *Server) writeLoop(conn *websocket.Conn, sub *match.Subscriber, errs <-chan string) {
	for {
		var msg ServerMessage
		select {
		case <-sub.Done():
			return
		case u := <-sub.Updates():
			msg = newServerMessage(u)
		case e := <-errs:
			msg = ServerMessage{Event: "error", Error: e}
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
