package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/armature-labs/armature/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	modulesJSON     bool
	modulesRegistry string
)

func init() {
	modulesCmd.Flags().BoolVar(&modulesJSON, "json", false, "Output in JSON format")
	modulesCmd.Flags().StringVar(&modulesRegistry, "registry", "", "Registry index URL or file path override")
	rootCmd.AddCommand(modulesCmd)
}

var modulesCmd = &cobra.Command{
	Use:   "modules <template>",
	Short: "List a template's optional modules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := modulesRegistry
		if url == "" {
			url = catalog.IndexURL()
		}

		templates, err := catalog.FetchIndexCached(url, catalog.DefaultIndexMaxAge)
		if err != nil {
			return err
		}

		tmpl, err := catalog.Find(templates, args[0])
		if err != nil {
			return err
		}

		if len(tmpl.Modules) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Template %s has no optional modules.\n", tmpl.Name)
			return nil
		}

		if modulesJSON {
			data, err := json.MarshalIndent(tmpl.Modules, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPRIORITY\tINCLUDES\tEXCLUDES\tDESCRIPTION")
		for _, m := range tmpl.Modules {
			desc := m.Description
			if desc == "" {
				desc = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
				m.Name, m.Priority, joinOrDash(m.Includes), joinOrDash(m.Excludes), desc)
		}
		return w.Flush()
	},
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
