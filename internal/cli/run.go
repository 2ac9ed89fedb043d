package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kolah/swagts/internal/codegen"
	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/logging"
	"github.com/kolah/swagts/internal/output"
)

type runOptions struct {
	dryRun bool
	check  bool
}

func bindRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Print generated declarations instead of writing them")
	cmd.Flags().Bool("check", false, "Fail if any artifact is missing or out of date, without writing")
}

func runOptionsFrom(cmd *cobra.Command) runOptions {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	check, _ := cmd.Flags().GetBool("check")
	return runOptions{dryRun: dryRun, check: check}
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
}

// emit writes every successful output and reports each document. It fails
// after all outputs were handled if any document failed, counting documents
// that were lost before compilation as well.
func emit(cmd *cobra.Command, logger *slog.Logger, outputs []codegen.Output, opts runOptions, failed int) error {
	sink := &output.FileSink{Check: opts.check}

	for _, out := range outputs {
		if out.Err != nil {
			logger.Error("document failed",
				"source", out.Source,
				"name", out.Name,
				"error", out.Err)
			failed++
			continue
		}

		if opts.dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", out.Path, out.Content)
			continue
		}

		wrote, err := output.Write(sink, out.Path, out.Content)
		if err != nil {
			logger.Error("writing document",
				"source", out.Source,
				"name", out.Name,
				"path", out.Path,
				"error", err)
			failed++
			continue
		}

		logger.Info("document generated",
			"title", out.Document.Info.Title,
			"description", out.Document.Info.Description,
			"path", out.Path,
			"changed", wrote,
			"elapsed", out.Elapsed)
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}
