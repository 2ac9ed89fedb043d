package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolah/swagts/internal/codegen"
	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/fetch"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch every configured resource and write its declarations",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	bindRunFlags(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return newUsageError("%v", err)
	}
	if err := cfg.RequireResources(); err != nil {
		return newUsageError("%v", err)
	}

	logger := newLogger(cmd, cfg)
	client := fetch.NewClient(cfg.Fetch, cfg.Workers, logger)

	resources, catalogErr := client.Resources(cmd.Context(), cfg.Resources)
	if catalogErr != nil {
		logger.Error("fetching resource catalogs", "error", catalogErr)
	}

	docs, err := client.Documents(cmd.Context(), resources)
	if err != nil {
		logger.Error("fetching documents", "error", err)
	}

	gen, err := codegen.New(cfg, logger)
	if err != nil {
		return err
	}

	if err := emit(cmd, logger, gen.Compile(docs), runOptionsFrom(cmd), len(resources)-len(docs)); err != nil {
		return err
	}
	if catalogErr != nil {
		return fmt.Errorf("some resource groups could not be fetched")
	}
	return nil
}
