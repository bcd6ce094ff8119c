package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/complior/engine/internal/apperr"
	"github.com/complior/engine/internal/service"
	"github.com/complior/engine/internal/shellexec"
)

func decodeBody(r *http.Request, out interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return apperr.Validation("invalid_body", "request body is not valid JSON")
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status())
}

type scanRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := s.svc.Scan(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type findingIdentity struct {
	CheckID      string `json:"checkId"`
	ObligationID string `json:"obligationId"`
}

func (s *Server) handleFixPreview(w http.ResponseWriter, r *http.Request) {
	var req findingIdentity
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	plan, err := s.svc.FixPreview(req.CheckID, req.ObligationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleFixApply(w http.ResponseWriter, r *http.Request) {
	var req findingIdentity
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := s.svc.FixApply(r.Context(), req.CheckID, req.ObligationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFixApplyAndValidate(w http.ResponseWriter, r *http.Request) {
	var req findingIdentity
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := s.svc.FixApplyAndValidate(r.Context(), req.CheckID, req.ObligationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFixApplyAll(w http.ResponseWriter, r *http.Request) {
	results, summary, err := s.svc.FixApplyAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results, "summary": summary})
}

type undoRequest struct {
	ID *int64 `json:"id"`
}

func (s *Server) handleFixUndo(w http.ResponseWriter, r *http.Request) {
	var req undoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := s.svc.FixUndo(r.Context(), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Validation)
}

func (s *Server) handleFixHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.svc.FixHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

type reportRequest struct {
	Format       string `json:"format"`
	Organization string `json:"organization"`
	Jurisdiction string `json:"jurisdiction"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	body, err := s.svc.Report(r.Context(), service.ReportOptions{
		Format:       req.Format,
		Organization: req.Organization,
		Jurisdiction: req.Jurisdiction,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	contentType := "text/markdown"
	if req.Format == "json" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}

type filePathAndContent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (s *Server) handleFileCreate(w http.ResponseWriter, r *http.Request) {
	var req filePathAndContent
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.FileCreate(req.Path, req.Content); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleFileEdit(w http.ResponseWriter, r *http.Request) {
	var req filePathAndContent
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.FileEdit(req.Path, req.Content); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type filePath struct {
	Path string `json:"path"`
}

func (s *Server) handleFileRead(w http.ResponseWriter, r *http.Request) {
	var req filePath
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	content, err := s.svc.FileRead(req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

func (s *Server) handleFileList(w http.ResponseWriter, r *http.Request) {
	var req filePath
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	entries, err := s.svc.FileList(req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"entries": entries})
}

func (s *Server) handleModeGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"mode": s.svc.Mode()})
}

type modeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleModeSet(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.SetMode(req.Mode); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mode": s.svc.Mode()})
}

type shellRequest struct {
	Command string `json:"command"`
	Cwd     string `json:"cwd"`
	Timeout int    `json:"timeout"`
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	var req shellRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := shellexec.Run(r.Context(), req.Command, s.resolveShellCwd(req.Cwd), time.Duration(req.Timeout)*time.Second)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type gitRequest struct {
	Action string   `json:"action"`
	Args   []string `json:"args"`
}

func (s *Server) handleGit(w http.ResponseWriter, r *http.Request) {
	var req gitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := shellexec.Git(r.Context(), req.Action, req.Args, s.svc.State.ProjectPath)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOnboardingGet(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profile()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleOnboardingPost(w http.ResponseWriter, r *http.Request) {
	var answers map[string]interface{}
	if err := decodeBody(r, &answers); err != nil {
		writeError(w, err)
		return
	}
	profile, err := s.svc.SaveProfile(answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	id, err := s.svc.CreateShare(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleShareGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	payload, err := s.svc.GetShare(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
