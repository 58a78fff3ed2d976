// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canonical/sqlgen"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		configPath string
		toStdout   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go file from the queries of a config file",
		Long:  "Reads a YAML config file listing queries and writes a Go file with one function per query.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			d, err := sqlgen.LookupDialect(cfg.Dialect)
			if err != nil {
				return fmt.Errorf("%s: %w", configPath, err)
			}

			cat, err := buildCatalog(cmd.Context(), cfg, a.logger)
			if err != nil {
				return err
			}
			var opts []sqlgen.Option
			if cat != nil {
				opts = append(opts, sqlgen.WithCatalog(cat))
			}

			a.logger.Debug("generating", "config", configPath, "dialect", d.Name(), "queries", len(cfg.Queries))
			src, err := sqlgen.GenerateFile(d, cfg.Package, cfg.queries(), opts...)
			if err != nil {
				return err
			}

			if toStdout {
				_, err := cmd.OutOrStdout().Write(src)
				return err
			}
			out := cfg.Output
			if !filepath.IsAbs(out) {
				out = filepath.Join(cfg.dir(), out)
			}
			if err := os.WriteFile(out, src, 0o644); err != nil {
				return fmt.Errorf("cannot write output: %w", err)
			}
			a.logger.Info("wrote generated code", "path", out, "queries", len(cfg.Queries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sqlgen.yaml", "Path to the config file")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the generated code to standard output")

	return cmd
}
