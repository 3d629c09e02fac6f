package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/goals/internal/app"
	"github.com/runoshun/goals/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the goals configuration file.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(rt))
	cmd.AddCommand(newConfigInitCommand(rt))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration after defaults, the config file
and command-line flags are merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withConfig(cmd, func(c *app.Container) error {
				out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, "[Loaded from]")
				if out.File.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", out.File.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.File.Path)
				}
				_, _ = fmt.Fprintln(w)

				_, _ = fmt.Fprintln(w, "[Effective Config]")
				if err := toml.NewEncoder(w).Encode(out.EffectiveConfig); err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				return nil
			})
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file",
		Long: `Write a commented configuration file to the config location
($XDG_CONFIG_HOME/goals/config.toml, or the file given with --config).

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withConfig(cmd, func(c *app.Container) error {
				out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
					Config: c.Config,
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
				return nil
			})
		},
	}
}
