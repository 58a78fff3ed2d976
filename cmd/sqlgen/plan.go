// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/sqlgen"
	"github.com/canonical/sqlgen/catalog"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		dialectName string
		catalogPath string
		into        string
	)

	cmd := &cobra.Command{
		Use:   "plan QUERY",
		Short: "Print how the columns of a query are bound",
		Long:  "Resolves the columns of a SELECT query and prints the table, field and symbols of each of them. With --into the generated function literal is printed instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := sqlgen.LookupDialect(dialectName)
			if err != nil {
				return err
			}
			var opts []sqlgen.Option
			if catalogPath != "" {
				data, err := os.ReadFile(catalogPath)
				if err != nil {
					return fmt.Errorf("cannot read catalog: %w", err)
				}
				cat, err := catalog.ParseYAML(data)
				if err != nil {
					return fmt.Errorf("%s: %w", catalogPath, err)
				}
				a.logger.Debug("read catalog file", "path", catalogPath, "tables", len(cat.Tables()))
				opts = append(opts, sqlgen.WithCatalog(cat))
			}

			query := args[0]
			if into != "" {
				fragment, err := sqlgen.Generate(d, query, into, opts...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), fragment)
				return err
			}

			plan, err := sqlgen.Plan(d, query, opts...)
			if err != nil {
				return err
			}
			a.logger.Debug("resolved query", "dialect", d.Name(), "fields", len(plan))
			return printPlan(cmd, plan)
		},
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", defaultDialect, "SQL dialect of the query")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog used to resolve bare columns")
	cmd.Flags().StringVar(&into, "into", "", "Print the generated function literal for this result type")

	return cmd
}

func printPlan(cmd *cobra.Command, plan []sqlgen.Field) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTABLE\tCOLUMN\tFIELD\tSOURCE")
	for i, f := range plan {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s.%s\n", i, f.Table, f.Column, f.Target, f.Schema, f.ColumnIdent)
	}
	return w.Flush()
}

func newDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported SQL dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range sqlgen.Dialects() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
