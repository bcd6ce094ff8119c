package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/complior/engine/internal/transport/toolcall"
)

// toolCallRequest is one line of stdio input: a tool name and its
// JSON-schema-typed arguments, per the assistant tool-call protocol (§6).
type toolCallRequest struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args"`
}

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Launch the engine in stdio tool-call mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, llmClient, log, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}
			handler := toolcall.New(svc, llmClient)

			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			encoder := json.NewEncoder(os.Stdout)

			for scanner.Scan() {
				var req toolCallRequest
				if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
					encoder.Encode(toolcall.Result{Content: "invalid request: " + err.Error(), IsError: true})
					continue
				}
				result := dispatch(ctx, handler, req)
				if err := encoder.Encode(result); err != nil {
					log.Error("failed to write tool-call response")
				}
			}
			return scanner.Err()
		},
	}
}

func dispatch(ctx context.Context, h *toolcall.Handler, req toolCallRequest) toolcall.Result {
	switch req.Tool {
	case "complior_scan":
		return h.ComplianceScan(ctx)
	case "complior_fix":
		var args toolcall.FixArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return toolcall.Result{Content: err.Error(), IsError: true}
		}
		return h.ComplianceFix(ctx, args)
	case "complior_status":
		return h.ComplianceStatus()
	case "complior_explain":
		var args toolcall.ExplainArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return toolcall.Result{Content: err.Error(), IsError: true}
		}
		return h.ComplianceExplain(ctx, args)
	case "complior_search_tool":
		var args toolcall.SearchArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return toolcall.Result{Content: err.Error(), IsError: true}
		}
		return h.ComplianceSearchTool(args)
	case "complior_classify":
		var args toolcall.ClassifyArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return toolcall.Result{Content: err.Error(), IsError: true}
		}
		return h.ComplianceClassify(ctx, args)
	case "complior_report":
		var args toolcall.ReportArgs
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return toolcall.Result{Content: err.Error(), IsError: true}
		}
		return h.ComplianceReport(ctx, args)
	default:
		return toolcall.Result{Content: fmt.Sprintf("unknown tool %q", req.Tool), IsError: true}
	}
}
