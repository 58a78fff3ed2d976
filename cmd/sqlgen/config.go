// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"

	"github.com/canonical/sqlgen"
	"github.com/canonical/sqlgen/catalog"
)

// Config is a generation job read from a YAML file:
//
//	package: store
//	dialect: mysql
//	output: queries_gen.go
//	catalog:
//	  tables:
//	    users: [id, name]
//	queries:
//	  - name: ScanUser
//	    into: User
//	    sql: SELECT id, name FROM users
type Config struct {
	Package string        `yaml:"package"`
	Dialect string        `yaml:"dialect"`
	Output  string        `yaml:"output"`
	Catalog CatalogConfig `yaml:"catalog"`
	Queries []QueryConfig `yaml:"queries"`

	// path is the file the config was read from.
	path string
}

// CatalogConfig lists where the columns of tables come from. All sources
// are merged.
type CatalogConfig struct {
	Tables map[string][]string `yaml:"tables"`
	// File is a YAML catalog, relative to the config file.
	File string `yaml:"file"`

	// Driver and DSN open a database to read the columns of the tables
	// listed in Load from.
	Driver string   `yaml:"driver"`
	DSN    string   `yaml:"dsn"`
	Load   []string `yaml:"load"`
}

func (c CatalogConfig) isEmpty() bool {
	return len(c.Tables) == 0 && c.File == "" && c.Driver == ""
}

// QueryConfig is one query to generate a function for.
type QueryConfig struct {
	Name string `yaml:"name"`
	Into string `yaml:"into"`
	SQL  string `yaml:"sql"`

	// Line is where the query starts in the config file.
	Line int `yaml:"-"`
}

func (q *QueryConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain QueryConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*q = QueryConfig(p)
	q.Line = node.Line
	return nil
}

const (
	defaultDialect = "mysql"
	defaultOutput  = "sqlgen_gen.go"
)

// loadConfig reads and checks the job file at path.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse config: %s", err)
	}
	if cfg.Dialect == "" {
		cfg.Dialect = defaultDialect
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Package == "" {
		return fmt.Errorf("package is required")
	}
	if len(cfg.Queries) == 0 {
		return fmt.Errorf("no queries")
	}
	for i, q := range cfg.Queries {
		switch {
		case q.Name == "":
			return fmt.Errorf("query %d: name is required", i+1)
		case q.Into == "":
			return fmt.Errorf("query %s: into is required", q.Name)
		case q.SQL == "":
			return fmt.Errorf("query %s: sql is required", q.Name)
		}
	}
	if cfg.Catalog.Driver != "" && len(cfg.Catalog.Load) == 0 {
		return fmt.Errorf("catalog: driver %q set but no tables to load", cfg.Catalog.Driver)
	}
	if cfg.Catalog.Driver == "" && len(cfg.Catalog.Load) > 0 {
		return fmt.Errorf("catalog: tables to load but no driver")
	}
	return nil
}

// dir is the directory paths in the config are relative to.
func (cfg *Config) dir() string {
	return filepath.Dir(cfg.path)
}

func (cfg *Config) queries() []sqlgen.Query {
	qs := make([]sqlgen.Query, 0, len(cfg.Queries))
	for _, q := range cfg.Queries {
		qs = append(qs, sqlgen.Query{
			Name: q.Name,
			Into: q.Into,
			SQL:  q.SQL,
			Pos:  sqlgen.Position{Filename: cfg.path, Line: q.Line},
		})
	}
	return qs
}

// buildCatalog merges the catalog sources of cfg. It returns nil if cfg
// configures none.
func buildCatalog(ctx context.Context, cfg *Config, logger *slog.Logger) (*catalog.Catalog, error) {
	if cfg.Catalog.isEmpty() {
		return nil, nil
	}
	cat := catalog.New(cfg.Catalog.Tables)

	if cfg.Catalog.File != "" {
		path := cfg.Catalog.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.dir(), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read catalog: %w", err)
		}
		fromFile, err := catalog.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("read catalog file", "path", path, "tables", len(fromFile.Tables()))
		cat.Merge(fromFile)
	}

	if cfg.Catalog.Driver != "" {
		db, err := sql.Open(cfg.Catalog.Driver, cfg.Catalog.DSN)
		if err != nil {
			return nil, fmt.Errorf("cannot open catalog database: %w", err)
		}
		defer db.Close()
		loaded, err := catalog.Load(ctx, db, cfg.Catalog.Load...)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded catalog from database", "driver", cfg.Catalog.Driver, "tables", len(loaded.Tables()))
		cat.Merge(loaded)
	}
	return cat, nil
}
