// Package toolcall implements the seven assistant-facing tools
// (complior_scan, complior_fix, complior_status, complior_explain,
// complior_search_tool, complior_classify, complior_report). Each is pure
// over the engine's existing state: none of them mutate anything the HTTP
// transport doesn't also expose, and complior_explain/complior_classify
// never influence the findings a scan produced — they only narrate them.
package toolcall

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/complior/engine/internal/llm"
	"github.com/complior/engine/internal/service"
)

// Result is what every tool call returns: a text content block plus an
// error flag, per the assistant tool-call protocol.
type Result struct {
	Content string `json:"content"`
	IsError bool   `json:"isError"`
}

func textResult(v interface{}) Result {
	data, err := json.Marshal(v)
	if err != nil {
		return Result{Content: err.Error(), IsError: true}
	}
	return Result{Content: string(data)}
}

func errResult(err error) Result {
	return Result{Content: err.Error(), IsError: true}
}

// Handler dispatches the seven tools against a Service and an LLM client.
type Handler struct {
	svc *service.Service
	llm llm.Client
}

func New(svc *service.Service, llmClient llm.Client) *Handler {
	return &Handler{svc: svc, llm: llmClient}
}

// ComplianceScan runs complior_scan.
func (h *Handler) ComplianceScan(ctx context.Context) Result {
	result, err := h.svc.Scan(ctx)
	if err != nil {
		return errResult(err)
	}
	return textResult(result)
}

// ComplianceFix runs complior_fix. If apply is false, it only previews.
type FixArgs struct {
	CheckID      string `json:"checkId"`
	ObligationID string `json:"obligationId"`
	Apply        bool   `json:"apply"`
}

func (h *Handler) ComplianceFix(ctx context.Context, args FixArgs) Result {
	if !args.Apply {
		plan, err := h.svc.FixPreview(args.CheckID, args.ObligationID)
		if err != nil {
			return errResult(err)
		}
		return textResult(plan)
	}
	result, err := h.svc.FixApplyAndValidate(ctx, args.CheckID, args.ObligationID)
	if err != nil {
		return errResult(err)
	}
	return textResult(result)
}

// ComplianceStatus runs complior_status.
func (h *Handler) ComplianceStatus() Result {
	return textResult(h.svc.Status())
}

// ExplainArgs is the input to complior_explain.
type ExplainArgs struct {
	CheckID string `json:"checkId"`
}

// ComplianceExplain renders prose around a finding using the LLM
// collaborator. It never changes the finding's severity or pass/fail
// state; it only explains what's already there.
func (h *Handler) ComplianceExplain(ctx context.Context, args ExplainArgs) Result {
	last, ok := h.svc.State.GetLastScan()
	if !ok {
		return errResult(fmt.Errorf("no scan has been run yet"))
	}
	var finding interface{}
	for _, f := range last.Findings {
		if f.CheckID == args.CheckID {
			finding = f
			break
		}
	}
	if finding == nil {
		return errResult(fmt.Errorf("no finding with checkId %q in the last scan", args.CheckID))
	}
	if h.llm == nil {
		return textResult(finding) // degrade gracefully: return the raw finding without prose
	}

	raw, _ := json.Marshal(finding)
	prompt := "Explain this AI-compliance finding in plain language for a developer, and suggest why it matters:\n" + string(raw)
	prose, err := h.llm.Complete(ctx, prompt)
	if err != nil {
		return errResult(err)
	}
	return Result{Content: prose}
}

// SearchArgs is the input to complior_search_tool.
type SearchArgs struct {
	Query string `json:"query"`
}

// ComplianceSearchTool searches obligation titles/descriptions in the
// loaded catalogue — a lightweight lookup, not a general web search.
func (h *Handler) ComplianceSearchTool(args SearchArgs) Result {
	query := strings.ToLower(args.Query)
	var matches []interface{}
	for _, ob := range h.svc.Catalogue.Obligations {
		if strings.Contains(strings.ToLower(ob.Title), query) || strings.Contains(strings.ToLower(ob.Description), query) {
			matches = append(matches, ob)
		}
	}
	return textResult(matches)
}

// ClassifyArgs is the input to complior_classify.
type ClassifyArgs struct {
	Text string `json:"text"`
}

// ComplianceClassify asks the LLM collaborator to classify free text
// against the catalogue's categories; purely advisory, never persisted
// into a ScanResult.
func (h *Handler) ComplianceClassify(ctx context.Context, args ClassifyArgs) Result {
	if h.llm == nil {
		return errResult(llm.ErrNoProvider)
	}
	var categories []string
	for _, c := range h.svc.Catalogue.Categories {
		categories = append(categories, c.Name)
	}
	prompt := fmt.Sprintf("Classify the following text into one of these compliance categories (%s), and explain briefly:\n%s", strings.Join(categories, ", "), args.Text)
	response, err := h.llm.Complete(ctx, prompt)
	if err != nil {
		return errResult(err)
	}
	return Result{Content: response}
}

// ReportArgs is the input to complior_report.
type ReportArgs struct {
	Format       string `json:"format"`
	Organization string `json:"organization"`
	Jurisdiction string `json:"jurisdiction"`
}

func (h *Handler) ComplianceReport(ctx context.Context, args ReportArgs) Result {
	body, err := h.svc.Report(ctx, service.ReportOptions{
		Format:       args.Format,
		Organization: args.Organization,
		Jurisdiction: args.Jurisdiction,
	})
	if err != nil {
		return errResult(err)
	}
	return Result{Content: string(body)}
}
