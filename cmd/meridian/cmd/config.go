package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheApexWu/BloodMeridianNLP/internal/config"
)

func newConfigCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.MarshalYAML(*st.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if used := st.loader.GetConfigFileUsed(); used != "" {
				_, _ = fmt.Fprintf(out, "# loaded from %s\n", used)
			}
			_, _ = out.Write(data)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write the default configuration to FILE (default meridian.yaml)",
		Args:  cobra.MaximumNArgs(1),
		// Do not require a loadable config to create one.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.GenerateDefaultConfigFile(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}
