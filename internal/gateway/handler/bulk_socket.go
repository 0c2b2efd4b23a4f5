package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"marketlens/internal/analysis"
)

const (
	bulkStart      = "start"
	bulkProcessing = "processing"
	bulkResult     = "result"
	bulkDone       = "done"
	bulkError      = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type bulkCommand struct {
	Type     string   `json:"type"`
	Keywords []string `json:"keywords"`
	Text     string   `json:"text,omitempty"`
}

type bulkEvent struct {
	Type    string             `json:"type"`
	Index   int                `json:"index"`
	Total   int                `json:"total"`
	Keyword string             `json:"keyword,omitempty"`
	Item    *analysis.BulkItem `json:"item,omitempty"`
	Message string             `json:"message,omitempty"`
}

// HandleBulkSocket runs one sequential bulk analysis per connection. The
// client sends a start command; the server answers with a processing and a
// result event per keyword, then done. Once the client goes away no further
// keyword is dispatched and an in-flight result is dropped.
func (h *Handler) HandleBulkSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("bulk socket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var cmd bulkCommand
	if err := conn.ReadJSON(&cmd); err != nil {
		h.log.Debug("bulk socket closed before start", zap.Error(err))
		return
	}
	if !strings.EqualFold(strings.TrimSpace(cmd.Type), bulkStart) {
		_ = conn.WriteJSON(bulkEvent{Type: bulkError, Message: "expected a start command"})
		return
	}
	keywords := bulkKeywords(cmd.Keywords, cmd.Text)
	if len(keywords) == 0 {
		_ = conn.WriteJSON(bulkEvent{Type: bulkError, Message: "no keywords given"})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		// Any read error means the peer is gone.
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	total := len(keywords)
	for i, kw := range keywords {
		if ctx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(bulkEvent{Type: bulkProcessing, Index: i, Total: total, Keyword: kw}); err != nil {
			return
		}
		item := analysis.BulkItem{Index: i, Total: total, Keyword: kw, Analysis: h.gateway.AnalyzeKeyword(ctx, kw)}
		if ctx.Err() != nil {
			h.log.Debug("bulk socket closed mid-run", zap.Int("completed", i), zap.Int("total", total))
			return
		}
		if err := conn.WriteJSON(bulkEvent{Type: bulkResult, Index: i, Total: total, Keyword: kw, Item: &item}); err != nil {
			return
		}
	}
	_ = conn.WriteJSON(bulkEvent{Type: bulkDone, Index: total, Total: total})
}
