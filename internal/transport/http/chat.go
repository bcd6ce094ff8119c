package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/complior/engine/internal/llm"
)

type chatRequest struct {
	Message  string `json:"message"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Mode     string `json:"mode"`
}

// sseEvent writes one named SSE frame and flushes it immediately, matching
// how the teacher's own services write streaming output: no SSE library
// appears anywhere in the pack, so this stays on the standard library.
func sseEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(`{}`)
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// handleChat streams thinking, text, usage and done frames over SSE, or an
// error frame when no provider is configured or the completion fails; it
// emits no tool-call or tool-result frames. The LLM collaborator never produces or adjusts
// compliance findings; it only renders prose around what the deterministic
// scan already found.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sseEvent(w, flusher, "thinking", map[string]string{"status": "consulting provider"})

	if s.llm == nil {
		sseEvent(w, flusher, "error", map[string]string{"message": llm.ErrNoProvider.Error()})
		return
	}

	response, err := s.llm.Complete(r.Context(), req.Message)
	if err != nil {
		sseEvent(w, flusher, "error", map[string]string{"message": err.Error()})
		return
	}

	sseEvent(w, flusher, "text", map[string]string{"delta": response})
	sseEvent(w, flusher, "usage", map[string]int{"promptTokens": len(req.Message), "completionTokens": len(response)})
	sseEvent(w, flusher, "done", map[string]bool{"done": true})
}
