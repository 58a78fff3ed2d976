/*
Package expr resolves a parsed SELECT statement into a binding plan. The plan
maps every projected column to the table it comes from, the name of the Go
field it fills and the schema symbols the generated code looks it up with.
expr does not parse SQL text and does not generate code.

The package is split up into three stages: the Registry stage, the Provenance
stage and the Plan stage.

# Registry stage

The FROM clause of the statement is turned into an ordered table registry
keyed by the effective name of every table, that is its alias if it has one
and its declared name otherwise. Only plain table references reach this
stage; dialects flatten joins and drop derived tables before it.

# Provenance stage

Each projection item is resolved against the registry. Qualified columns
name their table directly. Bare columns belong to the only table in scope,
or, when a ColumnSource is provided, to the single table that declares them.
Anything that is not a column reference is rejected.

# Plan stage

Provenance records are transformed into Fields by pure naming rules: the
schema symbol is the PascalCase table name followed by "Schema", the
target field is the snake_case output name and the column symbol is the
SCREAMING_SNAKE_CASE column name. The resulting identifiers are checked to be
usable as Go identifiers.
*/
package expr
