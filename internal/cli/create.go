package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/armature-labs/armature/internal/scaffold"
	"github.com/armature-labs/armature/internal/userdata"
	"github.com/spf13/cobra"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

var (
	createTemplate    string
	createModules     []string
	createYes         bool
	createVerbose     bool
	createNoBootstrap bool
	createRegistry    string
)

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template name (prompted for when omitted)")
	createCmd.Flags().StringSliceVarP(&createModules, "modules", "m", nil, "Module names to apply (comma-separated)")
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "Skip prompts and accept defaults")
	createCmd.Flags().BoolVar(&createVerbose, "verbose", false, "Print condition evaluation traces")
	createCmd.Flags().BoolVar(&createNoBootstrap, "no-bootstrap", false, "Skip dependency installation")
	createCmd.Flags().StringVar(&createRegistry, "registry", "", "Registry index URL or file path override")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new project from a template",
	Long: `Clone a template from the registry into a new project directory and
apply the selected feature modules.

Examples:
  armature create my-app -t react-spa -m auth,i18n
  armature create my-app -t react-spa -y --no-bootstrap`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !namePattern.MatchString(name) {
			return fmt.Errorf("invalid project name %q: must match pattern [a-z0-9][a-z0-9._-]*", name)
		}

		if err := userdata.Init(io.Discard); err != nil {
			return fmt.Errorf("initializing user directories: %w", err)
		}

		// Distinguish "-m" absent (prompt) from "-m" set (use as-is).
		var modules []string
		if cmd.Flags().Changed("modules") {
			modules = createModules
			if modules == nil {
				modules = []string{}
			}
		}

		result, err := scaffold.Create(scaffold.Options{
			Name:        name,
			Template:    createTemplate,
			Modules:     modules,
			Yes:         createYes,
			Verbose:     createVerbose,
			NoBootstrap: createNoBootstrap,
			Registry:    createRegistry,
			In:          os.Stdin,
			Out:         cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n✓ Project created at %s\n", result.ProjectDir)
		fmt.Fprintf(out, "  modules: %d applied, instructions: %d executed, %d skipped, %d failed\n",
			len(result.Resolution.Modules), result.Summary.Executed, result.Summary.Skipped, result.Summary.Failed)
		if result.Summary.Failed > 0 {
			fmt.Fprintf(out, "  run `armature logs --status failed` for details\n")
		}
		return nil
	},
}
