// Package http wires the engine's request/response and SSE transport over
// gorilla/mux, matching the router the rest of the teacher's HTTP-facing
// services use for path variables and method-scoped routes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/complior/engine/internal/apperr"
	"github.com/complior/engine/internal/llm"
	"github.com/complior/engine/internal/logger"
	"github.com/complior/engine/internal/service"
)

// Server holds the router and its collaborators.
type Server struct {
	svc    *service.Service
	llm    llm.Client
	log    logger.Interface
	router *mux.Router
}

func NewServer(svc *service.Service, llmClient llm.Client, log logger.Interface) *Server {
	s := &Server{svc: svc, llm: llmClient, log: log.WithComponent("http")}
	s.router = mux.NewRouter()
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/scan", s.handleScan).Methods(http.MethodPost)
	r.HandleFunc("/fix/preview", s.handleFixPreview).Methods(http.MethodPost)
	r.HandleFunc("/fix/apply", s.handleFixApply).Methods(http.MethodPost)
	r.HandleFunc("/fix/apply-and-validate", s.handleFixApplyAndValidate).Methods(http.MethodPost)
	r.HandleFunc("/fix/apply-all", s.handleFixApplyAll).Methods(http.MethodPost)
	r.HandleFunc("/fix/undo", s.handleFixUndo).Methods(http.MethodPost)
	r.HandleFunc("/fix/history", s.handleFixHistory).Methods(http.MethodGet)
	r.HandleFunc("/report", s.handleReport).Methods(http.MethodPost)
	r.HandleFunc("/file/create", s.handleFileCreate).Methods(http.MethodPost)
	r.HandleFunc("/file/edit", s.handleFileEdit).Methods(http.MethodPost)
	r.HandleFunc("/file/read", s.handleFileRead).Methods(http.MethodPost)
	r.HandleFunc("/file/list", s.handleFileList).Methods(http.MethodPost)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/mode", s.handleModeGet).Methods(http.MethodGet)
	r.HandleFunc("/mode", s.handleModeSet).Methods(http.MethodPost)
	r.HandleFunc("/shell", s.handleShell).Methods(http.MethodPost)
	r.HandleFunc("/git", s.handleGit).Methods(http.MethodPost)
	r.HandleFunc("/onboarding/profile", s.handleOnboardingGet).Methods(http.MethodGet)
	r.HandleFunc("/onboarding/answers", s.handleOnboardingPost).Methods(http.MethodPost)
	r.HandleFunc("/share", s.handleShareCreate).Methods(http.MethodPost)
	r.HandleFunc("/share/{id}", s.handleShareGet).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		writeJSON(w, ae.HTTPStatus(), map[string]string{"error": ae.Code, "message": ae.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal", "message": err.Error()})
}

// shell tool wiring is here rather than in shellexec, since cwd resolution
// is a transport-layer concern (relative to the project root).
func (s *Server) resolveShellCwd(cwd string) string {
	if cwd == "" {
		return s.svc.State.ProjectPath
	}
	if !filepath.IsAbs(cwd) {
		return filepath.Join(s.svc.State.ProjectPath, cwd)
	}
	return cwd
}
