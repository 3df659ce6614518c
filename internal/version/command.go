package version

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand registers `<program> version`, where program is the name of root.
func AttachCobraVersionCommand(root *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show the build of " + root.Name() + ".",
		Long: heredoc.Docf(`
			Show the release, git commit and build time of %s.
			Release builds set them with -ldflags.`,
			root.Name(),
		),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), Full(root.Name())); err != nil {
				return fmt.Errorf("print version: %w", err)
			}

			return nil
		},
	}

	root.AddCommand(versionCmd)
}
