package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"duoreport/internal/export"
	"duoreport/internal/metrics"
	"duoreport/internal/models"
	"duoreport/internal/session"
	"duoreport/internal/store"
	"duoreport/internal/summarize"
)

type Handlers struct {
	log        *zap.Logger
	store      *store.Store
	hub        *session.Hub
	summarizer *summarize.Client
}

func NewHandlers(log *zap.Logger, st *store.Store, hub *session.Hub, summarizer *summarize.Client) *Handlers {
	return &Handlers{
		log:        log,
		store:      st,
		hub:        hub,
		summarizer: summarizer,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// CreateRoom mints a fresh 8-character room id and seeds its empty document.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	roomID := uuid.New().String()[:8]

	if _, err := h.store.CreateIfAbsent(r.Context(), roomID, models.NewDocument()); err != nil {
		h.log.Error("room creation failed", zap.String("room", roomID), zap.Error(err))
		http.Error(w, "document store unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, models.CreateRoomResponse{RoomID: roomID})
}

/*** Collaboration WebSocket: the session lifecycle controller ***/

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

const roomFullMessage = "Room is full. Only 2 users allowed per room."

// CollabWS drives one participant's session: handshake, admission, initial
// document hand-off, then the message loop until the connection ends.
func (h *Handlers) CollabWS(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Handshake: the first inbound message carries only a username. A
	// malformed handshake is a silent close.
	var hello models.Message
	if err := conn.ReadJSON(&hello); err != nil {
		return
	}
	username := hello.Username
	if username == "" {
		username = "Anonymous"
	}

	client := session.NewClient(conn, username)
	room, admitted := h.hub.Admit(roomID, client)
	if !admitted {
		_ = conn.WriteJSON(models.Message{Type: models.MsgError, Text: roomFullMessage})
		return
	}
	defer func() {
		h.hub.Remove(roomID, client)
		room.Broadcast(client, models.Message{
			Type:     models.MsgUserLeft,
			Username: username,
			Users:    h.hub.ParticipantNames(roomID),
		})
	}()

	ctx := context.Background()
	doc := h.loadOrCreate(ctx, roomID)

	// All writes after admission go through the client so they serialize
	// with broadcasts from the peer's goroutine.
	_ = client.Send(models.Message{
		Type:     models.MsgInit,
		Document: doc,
		Username: username,
		Users:    h.hub.ParticipantNames(roomID),
	})
	room.Broadcast(client, models.Message{
		Type:     models.MsgUserJoined,
		Username: username,
		Users:    h.hub.ParticipantNames(roomID),
	})

	// Message loop. A single malformed message is dropped and the loop
	// continues; only a transport error ends the session.
	for {
		var msg models.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read failed", zap.String("room", roomID), zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case models.MsgEdit:
			if !models.IsSection(msg.Section) {
				h.log.Debug("edit for unknown section dropped",
					zap.String("room", roomID), zap.String("section", msg.Section))
				continue
			}
			// Persist first, then relay: the peer must never see an edit
			// the store was not yet asked to keep.
			h.persistEdit(ctx, roomID, msg.Section, msg.Content)
			out := msg
			out.Username = username
			room.Broadcast(client, out)
			metrics.MessageRelayed(models.MsgEdit)

		case models.MsgCursor:
			// Advisory only, never persisted.
			out := msg
			out.Username = username
			room.Broadcast(client, out)
			metrics.MessageRelayed(models.MsgCursor)

		default:
			h.log.Debug("unknown message type dropped",
				zap.String("room", roomID), zap.String("type", msg.Type))
		}
	}
}

// loadOrCreate fetches the room's document, seeding an empty one for an
// unseen room. If the store is unreachable the session continues on a fresh
// in-memory document.
func (h *Handlers) loadOrCreate(ctx context.Context, roomID string) *models.Document {
	doc, err := h.store.Get(ctx, roomID)
	if err == nil {
		return doc
	}

	fresh := models.NewDocument()
	if errors.Is(err, store.ErrNotFound) {
		if _, err := h.store.CreateIfAbsent(ctx, roomID, fresh); err != nil {
			h.log.Warn("seeding document failed", zap.String("room", roomID), zap.Error(err))
		}
		return fresh
	}

	h.log.Warn("document load failed, continuing without persistence",
		zap.String("room", roomID), zap.Error(err))
	return fresh
}

// persistEdit applies section content to the stored document. Content may be
// nil for delta-only edits, which still bump last_active. Store failures are
// logged and the session keeps running unpersisted.
func (h *Handlers) persistEdit(ctx context.Context, roomID, section string, content *string) {
	doc, err := h.store.Get(ctx, roomID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Warn("edit load failed", zap.String("room", roomID), zap.Error(err))
		}
		return
	}
	if content != nil {
		doc.Sections[section] = *content
	}
	doc.LastActive = time.Now().Unix()
	if err := h.store.Put(ctx, roomID, doc); err != nil {
		h.log.Warn("edit persistence failed", zap.String("room", roomID), zap.Error(err))
	}
}

/*** Export and summarization collaborators ***/

// Export streams the room's document as a PDF attachment.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")

	doc, err := h.store.Get(r.Context(), roomID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("export load failed", zap.String("room", roomID), zap.Error(err))
		http.Error(w, "document store unavailable", http.StatusServiceUnavailable)
		return
	}

	pdf, err := export.RenderPDF(roomID, doc.Sections)
	if err != nil {
		h.log.Error("pdf render failed", zap.String("room", roomID), zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", roomID))
	_, _ = w.Write(pdf)
}

// Summarize condenses one section into bullets via the summarization
// service. The response is always 200 with a bullet list once the document
// is found.
func (h *Handlers) Summarize(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	section := chi.URLParam(r, "section")

	doc, err := h.store.Get(r.Context(), roomID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("summarize load failed", zap.String("room", roomID), zap.Error(err))
		http.Error(w, "document store unavailable", http.StatusServiceUnavailable)
		return
	}

	bullets := h.summarizer.Bullets(r.Context(), doc.Sections[section])
	writeJSON(w, models.SummaryResponse{Summary: bullets})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
