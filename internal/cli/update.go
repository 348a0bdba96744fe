package cli

import (
	"fmt"
	"os"

	"github.com/armature-labs/armature/internal/branding"
	"github.com/armature-labs/armature/internal/updater"
	"github.com/spf13/cobra"
)

var updateVersion string

func init() {
	updateCmd.Flags().StringVar(&updateVersion, "version", "", "Check a specific version (e.g., 1.2.0)")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	Long: `Check GitHub releases for a newer version of ` + branding.CLIName() + ` and print
how to install it. The binary is never replaced in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.New(buildVersion)

		var release *updater.Release
		var err error
		if updateVersion != "" {
			fmt.Fprintf(os.Stderr, "Checking for version %s...\n", updateVersion)
			release, err = u.CheckSpecificVersion(updateVersion)
		} else {
			fmt.Fprintln(os.Stderr, "Checking for updates...")
			release, err = u.CheckLatestVersion()
		}
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}

		available, err := updater.IsUpdateAvailable(buildVersion, release.Version)
		if err != nil {
			// A "dev" build has no comparable version; always report.
			if buildVersion == "dev" {
				available = true
			} else {
				return fmt.Errorf("comparing versions: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if !available {
			fmt.Fprintf(out, "You are on the latest version (%s)\n", buildVersion)
			return nil
		}

		fmt.Fprintf(out, "Update available: %s -> %s\n", buildVersion, release.Version)
		if release.HTMLURL != "" {
			fmt.Fprintf(out, "Release notes: %s\n", release.HTMLURL)
		}
		fmt.Fprintf(out, "Install with your package manager or download from https://github.com/%s/releases\n", branding.GitHubRepo())
		return nil
	},
}
