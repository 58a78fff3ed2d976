package dialect_test

import (
	"errors"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlgen/internal/dialect"
	"github.com/canonical/sqlgen/internal/expr"
)

// Hook up gocheck into the "go test" runner.
func TestDialect(t *testing.T) { TestingT(t) }

type DialectSuite struct{}

var _ = Suite(&DialectSuite{})

var parseTests = []struct {
	summary string
	input   string
	parsed  string
}{{
	summary: "bare columns",
	input:   "SELECT id, name FROM users",
	parsed:  "Select[From[users] Items[Column[id] Column[name]]]",
}, {
	summary: "aliases",
	input:   "SELECT u.id AS user_id, name n FROM users AS u",
	parsed:  "Select[From[users AS u] Items[Column[u.id] AS user_id Column[name] AS n]]",
}, {
	summary: "comma separated tables",
	input:   "SELECT u.id, p.title FROM users u, posts p",
	parsed:  "Select[From[users AS u posts AS p] Items[Column[u.id] Column[p.title]]]",
}, {
	summary: "joins are flattened",
	input:   "SELECT a.id FROM a JOIN b ON a.id = b.a_id LEFT JOIN c ON b.id = c.b_id",
	parsed:  "Select[From[a b c] Items[Column[a.id]]]",
}, {
	summary: "parenthesized joins",
	input:   "SELECT a.id FROM (a JOIN b ON a.id = b.id), c",
	parsed:  "Select[From[a b c] Items[Column[a.id]]]",
}, {
	summary: "schema qualified names",
	input:   "SELECT shop.orders.total, o.id FROM shop.orders, shop.orders AS o",
	parsed:  "Select[From[shop.orders shop.orders AS o] Items[Column[shop.orders.total] Column[o.id]]]",
}, {
	summary: "wildcards",
	input:   "SELECT *, u.* FROM users u",
	parsed:  "Select[From[users AS u] Items[Wildcard[*] Wildcard[u.*]]]",
}, {
	summary: "derived tables are skipped",
	input:   "SELECT t.id FROM (SELECT id FROM users) AS t, posts",
	parsed:  "Select[From[posts] Items[Column[t.id]]]",
}, {
	summary: "no from clause",
	input:   "SELECT id",
	parsed:  "Select[From[] Items[Column[id]]]",
}, {
	summary: "literal",
	input:   "SELECT 1 AS one FROM users",
	parsed:  "Select[From[users] Items[Unsupported[literal 1] AS one]]",
}, {
	summary: "arithmetic",
	input:   "SELECT id * 2 FROM users",
	parsed:  "Select[From[users] Items[Unsupported[arithmetic expression id * 2]]]",
}, {
	summary: "trailing semicolon",
	input:   "SELECT id FROM users;",
	parsed:  "Select[From[users] Items[Column[id]]]",
}, {
	summary: "repeated semicolons",
	input:   "SELECT id FROM users;;",
	parsed:  "Select[From[users] Items[Column[id]]]",
}, {
	summary: "leading semicolon",
	input:   "; SELECT id FROM users",
	parsed:  "Select[From[users] Items[Column[id]]]",
}, {
	summary: "comment after the semicolon",
	input:   "SELECT id FROM users; -- note",
	parsed:  "Select[From[users] Items[Column[id]]]",
}, {
	summary: "comments around the query",
	input:   "-- users\n/* all of them */ SELECT id FROM users # done",
	parsed:  "Select[From[users] Items[Column[id]]]",
}, {
	summary: "semicolon in a string",
	input:   "SELECT id FROM users WHERE name = 'a;b'",
	parsed:  "Select[From[users] Items[Column[id]]]",
}, {
	summary: "where clause is ignored",
	input:   "SELECT id FROM users WHERE id IN (SELECT user_id FROM posts)",
	parsed:  "Select[From[users] Items[Column[id]]]",
}}

func (s *DialectSuite) TestParseMySQL(c *C) {
	for i, t := range parseTests {
		sel, err := dialect.MySQL{}.Parse(t.input)
		c.Assert(err, IsNil, Commentf("test %d: %s", i, t.summary))
		c.Check(sel.String(), Equals, t.parsed, Commentf("test %d: %s", i, t.summary))
	}
}

var parseErrorTests = []struct {
	summary string
	input   string
	kind    error
	err     string
}{{
	summary: "empty",
	input:   "",
	kind:    expr.ErrSyntax,
	err:     "cannot parse query: syntax error: empty query",
}, {
	summary: "blank",
	input:   "  \n\t",
	kind:    expr.ErrSyntax,
	err:     "cannot parse query: syntax error: empty query",
}, {
	summary: "garbage",
	input:   "SELEC id FROM users",
	kind:    expr.ErrSyntax,
	err:     "cannot parse query: syntax error: .*",
}, {
	summary: "unterminated",
	input:   "SELECT id FROM",
	kind:    expr.ErrSyntax,
	err:     "cannot parse query: syntax error: .*",
}, {
	summary: "comments only",
	input:   "-- nothing here\n/* or here */;",
	kind:    expr.ErrSyntax,
	err:     "cannot parse query: syntax error: empty query",
}, {
	summary: "unterminated string",
	input:   "SELECT 'abc FROM users",
	kind:    expr.ErrSyntax,
	err:     "cannot parse query: syntax error: .*",
}, {
	summary: "garbage after the semicolon",
	input:   "SELECT id FROM users; garbage",
	kind:    expr.ErrUnsupportedStatement,
	err:     "cannot parse query: unsupported statement: only a single SELECT query is supported, found more than one statement",
}, {
	summary: "two statements",
	input:   "SELECT id FROM users; SELECT id FROM posts",
	kind:    expr.ErrUnsupportedStatement,
	err:     "cannot parse query: unsupported statement: only a single SELECT query is supported, found more than one statement",
}, {
	summary: "union",
	input:   "SELECT id FROM users UNION SELECT id FROM posts",
	kind:    expr.ErrUnsupportedStatement,
	err:     "cannot parse query: unsupported statement: set operations are not supported: .*",
}, {
	summary: "insert",
	input:   "INSERT INTO users (id) VALUES (1)",
	kind:    expr.ErrUnsupportedStatement,
	err:     "cannot parse query: unsupported statement: only a single SELECT query is supported, got INSERT",
}, {
	summary: "update",
	input:   "UPDATE users SET name = 'x'",
	kind:    expr.ErrUnsupportedStatement,
	err:     "cannot parse query: unsupported statement: only a single SELECT query is supported, got UPDATE",
}, {
	summary: "delete",
	input:   "DELETE FROM users",
	kind:    expr.ErrUnsupportedStatement,
	err:     "cannot parse query: unsupported statement: only a single SELECT query is supported, got DELETE",
}}

func (s *DialectSuite) TestParseMySQLErrors(c *C) {
	for i, t := range parseErrorTests {
		sel, err := dialect.MySQL{}.Parse(t.input)
		c.Check(sel, IsNil, Commentf("test %d: %s", i, t.summary))
		c.Check(err, ErrorMatches, t.err, Commentf("test %d: %s", i, t.summary))
		c.Check(errors.Is(err, t.kind), Equals, true, Commentf("test %d: %s", i, t.summary))
	}
}

func (s *DialectSuite) TestLookup(c *C) {
	d, err := dialect.Lookup("mysql")
	c.Assert(err, IsNil)
	c.Check(d.Name(), Equals, "mysql")

	d, err = dialect.Lookup("MySQL")
	c.Assert(err, IsNil)
	c.Check(d, Equals, dialect.Dialect(dialect.MySQL{}))

	_, err = dialect.Lookup("oracle")
	c.Check(err, ErrorMatches, `unknown dialect "oracle", have: mysql.*`)
}

// upper is a dialect that only exists in this test.
type upper struct {
	dialect.MySQL
}

func (upper) Name() string {
	return "Upper"
}

func (s *DialectSuite) TestRegister(c *C) {
	dialect.Register(upper{})
	d, err := dialect.Lookup("upper")
	c.Assert(err, IsNil)
	c.Check(d.Name(), Equals, "Upper")
	c.Check(dialect.Names(), DeepEquals, []string{"mysql", "upper"})
}
