package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/Satvikjoshi17/PrepForge/internal/app"
	"github.com/Satvikjoshi17/PrepForge/internal/domain"
	"github.com/Satvikjoshi17/PrepForge/internal/quizpool"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz attempt per websocket connection.
type WSHandler struct {
	attempts       *app.AttemptService
	defaultSeconds int
	upgrader       websocket.Upgrader
}

// NewWSHandler wires attempt websockets. defaultSeconds applies when the
// client does not override the per-question countdown; zero keeps the
// engine default.
func NewWSHandler(attempts *app.AttemptService, defaultSeconds int) *WSHandler {
	return &WSHandler{
		attempts:       attempts,
		defaultSeconds: defaultSeconds,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode string `json:"mode"`
}

type selectPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type rejectedPayload struct {
	Op string `json:"op"`
}

// ServeWS upgrades the request, begins an attempt, and relays session
// snapshots until the attempt completes or the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	if quizID == "" || userID == "" {
		http.Error(w, "missing quizId or userId", http.StatusBadRequest)
		return
	}
	opts := optionsFromQuery(r)
	if opts.PerQuestionSeconds == 0 {
		opts.PerQuestionSeconds = h.defaultSeconds
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	attempt, err := h.attempts.Begin(r.Context(), quizID, userID, opts)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.attempts.Abandon(attempt.ID)

	updates, cancel := attempt.Session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: snap}:
				case <-closeSignals:
					return
				}
				if snap.Phase == domain.PhaseCompleted {
					h.finalize(attempt.ID, send, closeSignals)
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		session := attempt.Session
		var ok bool
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}}
				continue
			}
			ok = session.Start(domain.Mode(payload.Mode))
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}
				continue
			}
			ok = session.SelectAnswer(payload.Option)
		case "check":
			ok = session.CheckAnswer()
		case "advance":
			ok = session.Advance()
		case "back":
			ok = session.GoBack()
		case "end":
			ok = session.EndEarly()
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
			continue
		}
		if !ok {
			send <- outboundMessage[any]{Type: "rejected", Payload: rejectedPayload{Op: inbound.Type}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// finalize stores the completed attempt and pushes the result summary.
// The connection's request context may already be gone when the timer
// completes the session, so finalization uses a background context.
func (h *WSHandler) finalize(attemptID string, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	response, err := h.attempts.Finalize(context.Background(), attemptID)
	if err != nil && response.ID == "" {
		select {
		case send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}:
		case <-closeSignals:
		}
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "results", Payload: response}:
	case <-closeSignals:
	}
}

func optionsFromQuery(r *http.Request) quizpool.Options {
	q := r.URL.Query()
	opts := quizpool.Options{
		Difficulty: domain.Difficulty(q.Get("difficulty")),
	}
	if count, err := strconv.Atoi(q.Get("count")); err == nil {
		opts.Count = count
	}
	if secs, err := strconv.Atoi(q.Get("seconds")); err == nil {
		opts.PerQuestionSeconds = secs
	}
	if q.Get("shuffle") == "true" {
		opts.Shuffle = true
	}
	return opts
}
