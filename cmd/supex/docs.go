package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/supexhq/supex-go/internal/docs"
)

func newDocsCommand() *cobra.Command {
	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Browse the runtime API documentation",
	}

	docsCmd.PersistentFlags().String("docs-dir", defaultDocsDir(), "documentation tree root")

	docsCmd.AddCommand(
		newDocsListCommand(),
		newDocsShowCommand(),
		newDocsSearchCommand(),
	)

	return docsCmd
}

func defaultDocsDir() string {
	if dir := os.Getenv("SUPEX_DOCS_DIR"); dir != "" {
		return dir
	}

	return "docs"
}

func docsStore(cmd *cobra.Command) (*docs.Store, error) {
	dir, err := cmd.Flags().GetString("docs-dir")
	if err != nil {
		return nil, err
	}

	store := docs.NewStore(dir)
	if !store.Available() {
		return nil, fmt.Errorf("documentation not available at %s (set --docs-dir or SUPEX_DOCS_DIR)", dir)
	}

	return store, nil
}

func newDocsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documented classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := docsStore(cmd)
			if err != nil {
				return err
			}

			entries, err := store.BuildIndex(cmd.Context())
			if err != nil {
				return err
			}

			width := 0
			for _, e := range entries {
				if len(e.Path) > width {
					width = len(e.Path)
				}
			}

			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, e.Path, e.Title)
			}

			return nil
		},
	}
}

func newDocsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show CLASS",
		Short: "Show documentation for a class path like Geom/Point3d",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := docsStore(cmd)
			if err != nil {
				return err
			}

			content, err := store.Load(args[0])
			if err != nil {
				similar, _ := store.FindSimilar(args[0], 5)
				if len(similar) > 0 {
					color.Yellow("No documentation for %q. Did you mean:", args[0])

					for _, s := range similar {
						fmt.Fprintf(cmd.OutOrStderr(), "  %s\n", s)
					}
				}

				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), content)

			return nil
		},
	}
}

func newDocsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find classes whose name matches the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := docsStore(cmd)
			if err != nil {
				return err
			}

			matches, err := store.FindSimilar(args[0], 20)
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				return fmt.Errorf("no classes matching %q", args[0])
			}

			for _, m := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}

			return nil
		},
	}
}
