package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/review-writer/internal/observability"
	"github.com/jonathan/review-writer/internal/pipeline"
	"github.com/jonathan/review-writer/internal/rendering"
	"github.com/jonathan/review-writer/internal/schemas"
	"github.com/jonathan/review-writer/internal/types"
)

var (
	generateRequestPath string
	generateOutputPath  string
	generateHTMLPath    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one review article from a request file",
	Long: `Run a single generation locally. The request file uses the same JSON
shape as POST /generate. The response is printed as JSON to stdout or written
to --output; --html additionally exports the article as a standalone page.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateRequestPath, "request", "r", "", "Path to generation request JSON")
	generateCmd.Flags().StringVarP(&generateOutputPath, "output", "o", "", "Write the JSON response to this file instead of stdout")
	generateCmd.Flags().StringVar(&generateHTMLPath, "html", "", "Also export the article as HTML to this file")
	_ = generateCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(generateCmd)
}

// readRequest loads a request file and checks it against the request schema.
func readRequest(path string) (*types.GenerationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	if err := schemas.Validate(schemas.GenerationRequest, string(data)); err != nil {
		return nil, fmt.Errorf("invalid request %s: %w", path, err)
	}

	var req types.GenerationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req, err := readRequest(generateRequestPath)
	if err != nil {
		return err
	}

	orch, closeFn, err := buildOrchestrator(ctx, appConfig, logger, observability.NewMetrics())
	if err != nil {
		return err
	}
	defer closeFn()

	printer := observability.NewPrinter(os.Stderr)
	var onProgress pipeline.ProgressCallback
	if appConfig.Verbose {
		onProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Stage, e.Message)
			if snapshot, ok := e.Content.(*types.ProductSnapshot); ok {
				printer.PrintProductSnapshot(snapshot)
			}
		}
	}

	resp, err := orch.GenerateWithProgress(ctx, req, onProgress)
	if err != nil {
		return err
	}
	if appConfig.Verbose {
		printer.PrintResponse(resp)
	}

	if err := writeResponse(resp, generateOutputPath); err != nil {
		return err
	}
	if generateHTMLPath != "" {
		if err := writeHTML(resp, req.Language, generateHTMLPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "HTML written to %s\n", generateHTMLPath)
	}
	return nil
}

func writeResponse(resp *types.GenerationResponse, path string) error {
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func writeHTML(resp *types.GenerationResponse, lang, path string) error {
	page, err := rendering.HTML(resp, lang)
	if err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}
