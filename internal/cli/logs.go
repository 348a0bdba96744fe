package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/armature-labs/armature/internal/audit"
	"github.com/spf13/cobra"
)

var (
	logsStatus  string
	logsProject string
	logsModule  string
	logsMaxAge  int
)

func init() {
	logsCmd.Flags().StringVar(&logsStatus, "status", "", "Filter by status (success, skipped, failed)")
	logsCmd.Flags().StringVar(&logsProject, "project", "", "Filter by project name substring")
	logsCmd.Flags().StringVar(&logsModule, "module", "", "Filter by module name substring")

	logsPruneCmd.Flags().IntVar(&logsMaxAge, "max-age-days", 30, "Remove logs older than this many days")

	logsCmd.AddCommand(logsShowCmd)
	logsCmd.AddCommand(logsPruneCmd)
	rootCmd.AddCommand(logsCmd)
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List instruction logs",
	Long:  `List the audit records written for every instruction attempt, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := audit.DefaultStore()
		if err != nil {
			return err
		}

		logs, err := store.List(audit.Filter{
			Status:          audit.Status(logsStatus),
			ProjectContains: logsProject,
			ModuleContains:  logsModule,
		})
		if err != nil {
			return err
		}

		if len(logs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No instruction logs found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "HASH\tTIME\tPROJECT\tMODULE\t#\tSTATUS")
		for _, l := range logs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				l.Hash, l.Timestamp.Format("2006-01-02 15:04:05"),
				l.ProjectName, l.ModuleName, l.InstructionIndex, l.Status)
		}
		return w.Flush()
	},
}

var logsShowCmd = &cobra.Command{
	Use:   "show <hash>",
	Short: "Show one instruction log in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := audit.DefaultStore()
		if err != nil {
			return err
		}

		l, err := store.Get(args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling log %s: %w", l.Hash, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var logsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old instruction logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := audit.DefaultStore()
		if err != nil {
			return err
		}

		removed, err := store.Prune(logsMaxAge)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d log(s) older than %d day(s)\n", removed, logsMaxAge)
		return nil
	},
}
