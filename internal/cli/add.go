package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/richapps/ngtron/internal/config"
	"github.com/richapps/ngtron/internal/logging"
	"github.com/richapps/ngtron/internal/schematic"
	"github.com/richapps/ngtron/internal/tasks"
	"github.com/richapps/ngtron/internal/tree"
	"github.com/spf13/cobra"
)

var (
	addProject        string
	addWorkspace      string
	addSkipInstall    bool
	addDryRun         bool
	addPackageManager string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add Electron targets to an Angular project",
	Long: `Add serve-electron and build-electron targets to a project in angular.json,
copy electron.main.js into the project's source root, add electron and
electron-packager to devDependencies, then install packages.

Without --project the workspace's defaultProject is used. Nothing is written
unless every step succeeds.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project to add Electron support to (default: workspace defaultProject)")
	addCmd.Flags().StringVarP(&addWorkspace, "workspace", "w", "", "Workspace directory (default: current directory)")
	addCmd.Flags().BoolVar(&addSkipInstall, "skip-install", false, "Do not run the package manager after writing files")
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Print the changes without writing them")
	addCmd.Flags().StringVar(&addPackageManager, "package-manager", "", "Package manager for the install step (npm, cnpm, yarn, pnpm)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	settings := config.Current()
	out := cmd.OutOrStdout()

	if addPackageManager != "" && !tasks.SupportedPackageManager(addPackageManager) {
		return fmt.Errorf("--package-manager: %w: %q", tasks.ErrUnsupportedPackageManager, addPackageManager)
	}

	dir, err := workspaceDir(addWorkspace)
	if err != nil {
		return err
	}
	t := tree.NewOS(dir)

	ctx := schematic.NewContext(logging.New("schematic"))
	ctx.PackageManager = addPackageManager
	ctx.DefaultPackageManager = settings.PackageManager

	if err := schematic.NgAdd(schematic.Options{Project: addProject})(t, ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "Project %s:\n", ctx.Project)
	printActions(out, t.Actions())

	if addDryRun {
		fmt.Fprintln(out)
		if err := t.Diff(out); err != nil {
			return fmt.Errorf("rendering diff: %w", err)
		}
		fmt.Fprintln(out, "\nDry run: no changes were written.")
		return nil
	}

	if err := t.Commit(); err != nil {
		return fmt.Errorf("writing changes: %w", err)
	}

	if addSkipInstall || settings.SkipInstall {
		fmt.Fprintln(out, "Skipping package installation.")
		return nil
	}

	runner := &tasks.Runner{
		Dir:    t.Root(),
		Stdout: out,
		Stderr: cmd.ErrOrStderr(),
		Logger: logging.New("tasks"),
	}
	return runner.Run(cmd.Context(), ctx.Tasks)
}

func workspaceDir(flag string) (string, error) {
	if flag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(flag)
	if err != nil {
		return "", fmt.Errorf("resolving workspace %s: %w", flag, err)
	}
	return abs, nil
}

func printActions(w io.Writer, actions []tree.Action) {
	for _, a := range actions {
		fmt.Fprintf(w, "%s %s\n", a.Kind, a.Path)
	}
}
