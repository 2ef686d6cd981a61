package main

import (
	"fmt"
	"path/filepath"

	"jobboard-engine/internal/config"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the engine configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config.yml path, creating it with defaults if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := config.EnsureUserConfig(resolveDataDir())
		if err != nil {
			return err
		}
		abs, _ := filepath.Abs(p)
		fmt.Fprintln(cmd.OutOrStdout(), abs)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration and the resolved API base url",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.sync()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n# api base: %s (%s)\n", rt.cfgPath, rt.baseURL, rt.baseSrc)
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(rt.cfg)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate config.yml without starting the engine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := config.EnsureUserConfig(resolveDataDir())
		if err != nil {
			return err
		}
		cfg, err := config.Load(p)
		if err != nil {
			return err
		}
		_, vr := config.NormalizeAndValidate(cfg)

		out := cmd.OutOrStdout()
		for _, w := range vr.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		for _, e := range vr.Errors {
			fmt.Fprintf(out, "error:   %s\n", e)
		}
		if !vr.OK() {
			return errors.Newf("%d config error(s)", len(vr.Errors))
		}
		fmt.Fprintf(out, "%s: ok\n", p)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configShowCmd, configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
