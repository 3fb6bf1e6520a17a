package cli

import (
	"errors"
	"fmt"

	"github.com/richapps/ngtron/internal/config"
	"github.com/richapps/ngtron/internal/doctor"
	"github.com/richapps/ngtron/internal/tree"
	"github.com/spf13/cobra"
)

var doctorWorkspace string

func init() {
	doctorCmd.Flags().StringVarP(&doctorWorkspace, "workspace", "w", "", "Workspace directory (default: current directory)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check a workspace and toolchain before adding Electron",
	Long: `Validate angular.json against its schema, report which projects already have
Electron targets, check package.json for the electron dependencies, and look up
node and the package manager on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := workspaceDir(doctorWorkspace)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Workspace %s:\n", dir)
		report := doctor.Run(tree.NewOS(dir), config.Current().PackageManager)
		report.Print(out)

		if !report.Healthy() {
			return errors.New("workspace check failed")
		}
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	},
}
