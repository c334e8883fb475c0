package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

func configCmd(g *globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and
VTREE_* environment overrides are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			switch format {
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = g.stdout.Write(data)
				return err
			case "json":
				enc := json.NewEncoder(g.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			default:
				return errors.New("E121").WithDetail(fmt.Sprintf("--format must be yaml or json, got %q", format))
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(configInitCmd(g))
	return cmd
}

func configInitCmd(g *globals) *cobra.Command {
	var (
		useYAML bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.JSONFileName
			if useYAML {
				name = config.YAMLFileName
			}
			path := filepath.Join(g.dir, name)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("E152").
					WithDetail(path + " already exists.").
					WithSuggestion("Pass --force to overwrite it")
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(g.stderr, "Created %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Write vtree.yaml instead of vtree.json")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
