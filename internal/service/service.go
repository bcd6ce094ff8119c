package service

import (
	"context"
	"fmt"

	"github.com/complior/engine/internal/apperr"
	"github.com/complior/engine/internal/cache"
	"github.com/complior/engine/internal/collector"
	"github.com/complior/engine/internal/events"
	"github.com/complior/engine/internal/fixapply"
	"github.com/complior/engine/internal/fixplan"
	"github.com/complior/engine/internal/logger"
	"github.com/complior/engine/internal/models"
	"github.com/complior/engine/internal/scanner"
	"github.com/complior/engine/internal/store"
	"github.com/complior/engine/internal/undo"
)

// Service wires every core component behind the operations the external
// protocol (§6) needs. It holds no compliance logic: it collects, scans,
// plans, applies, and undoes by delegating to the packages that do.
type Service struct {
	State     *ApplicationState
	Catalogue *models.Catalogue

	collector *collector.Collector
	scanner   *scanner.Scanner
	bus       *events.Bus
	history   *undo.Manager
	applier   *fixapply.Applier
	cache     *cache.Cache
	store     *store.Store
	log       logger.Interface
}

// New builds a Service for one project root. cache and store may both be
// nil (optional collaborators); bus may not.
func New(projectPath string, cat *models.Catalogue, bus *events.Bus, c *cache.Cache, st *store.Store, log logger.Interface) *Service {
	state := NewApplicationState(projectPath)
	coll := collector.New(log)
	scan := scanner.New(cat)

	svc := &Service{
		State:     state,
		Catalogue: cat,
		collector: coll,
		scanner:   scan,
		bus:       bus,
		cache:     c,
		store:     st,
		log:       log.WithComponent("service"),
	}

	rescan := func() models.ScanResult {
		result, err := svc.runScan(context.Background())
		if err != nil {
			return models.ScanResult{ProjectPath: projectPath}
		}
		return result
	}
	svc.history = undo.New(projectPath, bus, rescan)
	svc.applier = fixapply.New(projectPath, bus, svc.history, rescan)

	return svc
}

func (s *Service) runScan(ctx context.Context) (models.ScanResult, error) {
	s.bus.Emit(ctx, events.ScanStarted, "service", map[string]string{"projectPath": s.State.ProjectPath})

	scanCtx, err := s.collector.Collect(s.State.ProjectPath)
	if err != nil {
		return models.ScanResult{}, apperr.ScanErr("collect_failed", "failed to collect project files", err)
	}
	result := s.scanner.Scan(scanCtx)
	s.State.SetLastScan(result)
	if s.cache != nil {
		s.cache.PutScan(ctx, s.State.ProjectPath, result)
		s.cache.InvalidateReports(ctx, s.State.ProjectPath)
	}
	if s.store != nil {
		s.store.RecordScan(ctx, s.State.ProjectPath, result)
	}
	s.bus.Emit(ctx, events.ScanCompleted, "service", map[string]float64{"score": result.Score.TotalScore})
	return result, nil
}

// Scan runs a full scan and updates ApplicationState.LastScan.
func (s *Service) Scan(ctx context.Context) (models.ScanResult, error) {
	return s.runScan(ctx)
}

// Status answers the `status` endpoint.
type StatusResponse struct {
	Ready    bool             `json:"ready"`
	Version  string           `json:"version"`
	UptimeMS int64            `json:"uptime"`
	LastScan *models.ScanResult `json:"lastScan,omitempty"`
}

func (s *Service) Status() StatusResponse {
	resp := StatusResponse{Ready: true, Version: Version, UptimeMS: s.State.Uptime().Milliseconds()}
	if last, ok := s.State.GetLastScan(); ok {
		resp.LastScan = &last
	}
	return resp
}

// Version is the engine's reported version string.
const Version = "0.1.0"

// Mode gets/sets the current interaction mode.
func (s *Service) Mode() string { return s.State.GetMode() }

func (s *Service) SetMode(mode string) error {
	switch mode {
	case "scan", "fix", "chat":
		s.State.SetMode(mode)
		return nil
	default:
		return apperr.Validation("invalid_mode", fmt.Sprintf("unknown mode %q", mode))
	}
}

func (s *Service) findFinding(checkID, obligationID string) (models.Finding, bool) {
	last, ok := s.State.GetLastScan()
	if !ok {
		return models.Finding{}, false
	}
	for _, f := range last.Findings {
		if f.CheckID == checkID && (obligationID == "" || f.ObligationID == obligationID) {
			return f, true
		}
	}
	return models.Finding{}, false
}

// FixPreview builds a FixPlan for a finding identity without applying it.
func (s *Service) FixPreview(checkID, obligationID string) (*models.FixPlan, error) {
	finding, ok := s.findFinding(checkID, obligationID)
	if !ok {
		return nil, apperr.NotFound("finding_not_found", "no matching finding in the last scan")
	}
	plan := fixplan.Plan(finding, fixplan.Context{ProjectPath: s.State.ProjectPath}, s.Catalogue)
	if plan == nil {
		return nil, apperr.NotFound("no_fix_strategy", "no fix strategy available for this finding")
	}
	return plan, nil
}

// FixApply previews and applies a fix for a finding identity.
func (s *Service) FixApply(ctx context.Context, checkID, obligationID string) (models.FixResult, error) {
	plan, err := s.FixPreview(checkID, obligationID)
	if err != nil {
		return models.FixResult{}, err
	}
	before, _ := s.State.GetLastScan()
	result := s.applier.ApplyFix(ctx, *plan, before.Score.TotalScore)
	if s.cache != nil {
		s.cache.InvalidateReports(ctx, s.State.ProjectPath)
	}
	return result, nil
}

// FixApplyAndValidate applies a fix and attaches a FixValidation.
func (s *Service) FixApplyAndValidate(ctx context.Context, checkID, obligationID string) (models.FixResult, error) {
	plan, err := s.FixPreview(checkID, obligationID)
	if err != nil {
		return models.FixResult{}, err
	}
	before, _ := s.State.GetLastScan()
	result := s.applier.ApplyAndValidate(ctx, *plan, before)
	if s.cache != nil {
		s.cache.InvalidateReports(ctx, s.State.ProjectPath)
	}
	return result, nil
}

// FixApplyAllSummary is returned by fix/apply-all.
type FixApplyAllSummary struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}

// FixApplyAll applies every fixable failing finding from the last scan, in
// order, each seeing the prior fix's post-apply state.
func (s *Service) FixApplyAll(ctx context.Context) ([]models.FixResult, FixApplyAllSummary, error) {
	last, ok := s.State.GetLastScan()
	if !ok {
		return nil, FixApplyAllSummary{}, apperr.Validation("no_scan", "run a scan before fix/apply-all")
	}

	var results []models.FixResult
	var summary FixApplyAllSummary
	for _, f := range last.Findings {
		if f.Kind != models.CheckFail {
			continue
		}
		plan := fixplan.Plan(f, fixplan.Context{ProjectPath: s.State.ProjectPath}, s.Catalogue)
		if plan == nil {
			continue
		}
		beforeScore := last.Score.TotalScore
		if fresh, ok := s.State.GetLastScan(); ok {
			beforeScore = fresh.Score.TotalScore
		}
		result := s.applier.ApplyFix(ctx, *plan, beforeScore)
		results = append(results, result)
		if result.Applied {
			summary.Applied++
		} else {
			summary.Failed++
		}
	}
	if s.cache != nil {
		s.cache.InvalidateReports(ctx, s.State.ProjectPath)
	}
	return results, summary, nil
}

// FixUndo reverses the most recent fix, or a specific one by id.
func (s *Service) FixUndo(ctx context.Context, id *int64) (models.FixResult, error) {
	var result models.FixResult
	var err error
	if id != nil {
		result, err = s.history.UndoByID(ctx, *id)
	} else {
		result, err = s.history.UndoLast(ctx)
	}
	if err != nil {
		return models.FixResult{}, apperr.NotFound("undo_failed", err.Error())
	}
	if s.cache != nil {
		s.cache.InvalidateReports(ctx, s.State.ProjectPath)
	}
	return result, nil
}

// FixHistory returns the full ordered history log.
func (s *Service) FixHistory(ctx context.Context) (models.HistoryFile, error) {
	entries, err := s.history.Entries()
	if err != nil {
		return models.HistoryFile{}, apperr.ScanErr("history_read_failed", "failed to read fix history", err)
	}
	return models.HistoryFile{Entries: entries}, nil
}

// ReportOptions controls report rendering.
type ReportOptions struct {
	Format       string // markdown|pdf|json
	Organization string
	Jurisdiction string
}

// Report renders the last scan into the requested format. PDF rendering is
// an external collaborator's responsibility (Non-goals, §1); this engine
// only emits the structured/markdown inputs such a renderer consumes.
func (s *Service) Report(ctx context.Context, opts ReportOptions) ([]byte, error) {
	last, ok := s.State.GetLastScan()
	if !ok {
		return nil, apperr.Validation("no_scan", "run a scan before requesting a report")
	}

	if s.cache != nil {
		if cached, found := s.cache.GetReport(ctx, s.State.ProjectPath, opts.Format); found {
			return cached, nil
		}
	}

	var body []byte
	var err error
	switch opts.Format {
	case "", "markdown":
		body = []byte(renderMarkdownReport(last, opts))
	case "json":
		body, err = renderJSONReport(last)
	case "pdf":
		return nil, apperr.ToolErr("pdf_rendering_external", "PDF rendering is handled by an external collaborator; request format=markdown or format=json", nil)
	default:
		return nil, apperr.Validation("invalid_format", fmt.Sprintf("unknown report format %q", opts.Format))
	}
	if err != nil {
		return nil, apperr.ScanErr("report_render_failed", "failed to render report", err)
	}

	if s.cache != nil {
		s.cache.PutReport(ctx, s.State.ProjectPath, opts.Format, body)
	}
	return body, nil
}
