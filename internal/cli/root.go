package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/swagts/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "swagts",
		Short:         "Compile Swagger 2.0 resources into TypeScript declarations",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindFlags(root)
	root.AddCommand(GenerateCommand(), CompileCommand())

	return root
}
