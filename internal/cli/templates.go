package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/armature-labs/armature/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	templatesJSON     bool
	templatesRegistry string
)

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	templatesCmd.Flags().StringVar(&templatesRegistry, "registry", "", "Registry index URL or file path override")
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates available in the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := templatesRegistry
		if url == "" {
			url = catalog.IndexURL()
		}

		templates, err := catalog.FetchIndexCached(url, catalog.DefaultIndexMaxAge)
		if err != nil {
			return err
		}

		if len(templates) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The registry lists no templates.")
			return nil
		}

		if templatesJSON {
			data, err := json.MarshalIndent(templates, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tMODULES\tDESCRIPTION")
		for _, t := range templates {
			desc := t.Description
			if desc == "" {
				desc = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", t.Name, len(t.Modules), desc)
		}
		return w.Flush()
	},
}
