package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"elevate-backend/internal/analyses"
	"elevate-backend/internal/extract"
	"elevate-backend/internal/llm"
	"elevate-backend/internal/llm/gemini"
	"elevate-backend/internal/tier"
)

type options struct {
	file           string
	jobDescription string
	pro            bool
	apiKey         string
	model          string
	timeout        time.Duration
}

// generatorFactory is swapped in tests.
var generatorFactory = func(ctx context.Context, apiKey, model string) (llm.Generator, func() error, error) {
	if apiKey == "" || apiKey == "YOUR_KEY_HERE" {
		return llm.Unconfigured{}, func() error { return nil }, nil
	}
	client, err := gemini.New(ctx, apiKey)
	if err != nil {
		return nil, nil, err
	}
	return client.Model(model, gemini.WithJSON(), gemini.WithTemperature(0.1)), client.Close, nil
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume PDF and print the analysis record as JSON",
		Long: "analyze extracts text from a resume PDF, asks Gemini for an ATS analysis and prints the record.\n" +
			"Without GEMINI_API_KEY the fallback record is printed instead.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.apiKey == "" {
				opts.apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the resume PDF (required)")
	cmd.Flags().StringVarP(&opts.jobDescription, "job-description", "j", "", "Path to a job description text file")
	cmd.Flags().BoolVar(&opts.pro, "pro", false, "Print the unredacted record")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	cmd.Flags().StringVar(&opts.model, "model", "gemini-1.5-pro", "Gemini model name")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Upstream call timeout")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	text, err := extract.PDFText(ctx, data)
	if err != nil {
		return fmt.Errorf("extract resume text: %w", err)
	}

	jd := ""
	if opts.jobDescription != "" {
		raw, err := os.ReadFile(opts.jobDescription)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jd = string(raw)
	}

	gen, closeGen, err := generatorFactory(ctx, opts.apiKey, opts.model)
	if err != nil {
		return err
	}
	defer closeGen()

	t := tier.Standard
	if opts.pro {
		t = tier.Privileged
	}

	outcome := analyses.NewAnalyzer(gen, opts.timeout).Run(ctx, text, jd)
	if outcome.IsDegraded() {
		fmt.Fprintf(stderr, "warning: using fallback record (%s)\n", outcome.Reason)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analyses.Shape(outcome, t))
}
