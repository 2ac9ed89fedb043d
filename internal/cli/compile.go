package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolah/swagts/internal/codegen"
	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/loader"
	"github.com/kolah/swagts/internal/model"
)

const defaultSource = "local"

func CompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file>...",
		Short: "Compile local Swagger 2.0 documents",
		Long: "Compile local Swagger 2.0 documents. Each file becomes the resource " +
			"named after its base name within the group given by --source.",
		RunE: runCompile,
	}

	cmd.Flags().String("source", defaultSource, "Resource group name of the compiled files")
	bindRunFlags(cmd)

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return newUsageError("at least one document file is required")
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return newUsageError("%v", err)
	}

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		return newUsageError("--source must not be empty")
	}

	logger := newLogger(cmd, cfg)

	var docs []*model.Document
	failed := 0
	for _, path := range args {
		res := model.Resource{
			Source:   source,
			Name:     resourceName(path),
			Location: path,
		}

		result, err := loader.LoadFile(path)
		if err != nil {
			logger.Error("loading document", "path", path, "error", err)
			failed++
			continue
		}
		res.SwaggerVersion = result.Version
		for _, w := range result.Warnings {
			logger.Warn("document warning", "path", path, "warning", w)
		}

		doc, err := loader.Transform(result, res)
		if err != nil {
			logger.Error("transforming document", "path", path, "error", err)
			failed++
			continue
		}
		docs = append(docs, doc)
	}

	gen, err := codegen.New(cfg, logger)
	if err != nil {
		return err
	}

	return emit(cmd, logger, gen.Compile(docs), runOptionsFrom(cmd), failed)
}

// resourceName strips the directory and every extension, so users.swagger.json
// becomes users.
func resourceName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
