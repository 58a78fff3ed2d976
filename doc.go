/*
sqlgen turns SQL SELECT statements into Go code that builds typed result
values, at build time. It reads the query only: there is no database
connection and no runtime reflection.

# Basics

Given the query

	SELECT id, name AS full_name FROM users

sqlgen works out that both columns come from the users table and that the
result has the fields id and full_name. [Generate] then emits

	func(row []any) (Row, error) {
		v0, err := UsersSchema.ID.Parse(row[0])
		if err != nil {
			return Row{}, err
		}
		v1, err := UsersSchema.NAME.Parse(row[1])
		if err != nil {
			return Row{}, err
		}
		return Row{
			id:        v0,
			full_name: v1,
		}, nil
	}

The generated code expects a schema value per table in scope. The schema of
a table is named after it in PascalCase followed by Schema, and has one
member per column named after the column in SCREAMING_SNAKE_CASE. Each
member has a Parse method:

	Parse(v any) (T, error)

sqlgen does not check these symbols exist; the Go compiler does.

# Naming

	schema symbol   PascalCase(table) + "Schema"      order_items -> OrderItemsSchema
	column symbol   SCREAMING_SNAKE_CASE(column)      unit_price  -> UNIT_PRICE
	result field    snake_case(alias, else column)    fullName    -> full_name

# Resolution

Tables are referred to by their alias if they have one, and by their
unqualified name otherwise. A qualified column, u.id, belongs to the table
declared as u. A bare column belongs to the only table of the query. When a
query reads from several tables a bare column is ambiguous, unless a
catalog passed with [WithCatalog] lists it in exactly one of them.

Joins are treated as a list of tables and their conditions are ignored.
Wildcards, function calls, literals, arithmetic and subqueries cannot be
bound to a column and are rejected, as is anything other than a single
plain SELECT.

# Errors

Every failure is an [*Error] carrying the position given with
[WithPosition], wrapping one of the Err* values of this package.
*/
package sqlgen
