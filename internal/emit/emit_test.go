package emit_test

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlgen/internal/emit"
	"github.com/canonical/sqlgen/internal/expr"
)

// Hook up gocheck into the "go test" runner.
func TestEmit(t *testing.T) { TestingT(t) }

type EmitSuite struct{}

var _ = Suite(&EmitSuite{})

var userPlan = []expr.Field{{
	Table:       "users",
	Column:      "id",
	Target:      "id",
	Schema:      "UsersSchema",
	ColumnIdent: "ID",
}, {
	Table:       "users",
	Column:      "name",
	Alias:       "full_name",
	Target:      "full_name",
	Schema:      "UsersSchema",
	ColumnIdent: "NAME",
}}

var postPlan = []expr.Field{{
	Table:       "posts",
	Column:      "title",
	Target:      "title",
	Schema:      "PostsSchema",
	ColumnIdent: "TITLE",
}}

// sameCode compares Go source ignoring the amount of white space.
func sameCode(c *C, obtained, expected string) {
	c.Check(strings.Fields(obtained), DeepEquals, strings.Fields(expected), Commentf("obtained:\n%s", obtained))
}

func (s *EmitSuite) TestFragment(c *C) {
	fragment, err := emit.Fragment("Row", userPlan)
	c.Assert(err, IsNil)
	sameCode(c, fragment, `
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
}`)

	e, err := parser.ParseExpr(fragment)
	c.Assert(err, IsNil)
	_, ok := e.(*ast.FuncLit)
	c.Check(ok, Equals, true)
}

func (s *EmitSuite) TestFragmentIsFormatted(c *C) {
	fragment, err := emit.Fragment("Row", userPlan)
	c.Assert(err, IsNil)
	c.Check(strings.HasPrefix(fragment, "func(row []any) (Row, error) {\n\tv0, err := UsersSchema.ID.Parse(row[0])\n"), Equals, true)
	c.Check(strings.HasSuffix(fragment, "\t}, nil\n}"), Equals, true)
}

func (s *EmitSuite) TestFragmentQualifiedInto(c *C) {
	fragment, err := emit.Fragment("models.Post", postPlan)
	c.Assert(err, IsNil)
	sameCode(c, fragment, `
func(row []any) (models.Post, error) {
	v0, err := PostsSchema.TITLE.Parse(row[0])
	if err != nil {
		return models.Post{}, err
	}
	return models.Post{
		title: v0,
	}, nil
}`)
}

func (s *EmitSuite) TestFragmentErrors(c *C) {
	for _, into := range []string{"", "_", "1Row", "a.b.c", "func", "Row[int]"} {
		_, err := emit.Fragment(into, userPlan)
		c.Check(err, ErrorMatches, `cannot emit fragment: invalid identifier ".*" for result type`, Commentf(into))
		c.Check(errors.Is(err, expr.ErrInvalidIdentifier), Equals, true, Commentf(into))
	}
}

func (s *EmitSuite) TestFragmentDeterministic(c *C) {
	first, err := emit.Fragment("Row", userPlan)
	c.Assert(err, IsNil)
	for i := 0; i < 10; i++ {
		again, err := emit.Fragment("Row", userPlan)
		c.Assert(err, IsNil)
		c.Assert(again, Equals, first)
	}
}

var fileFunctions = []emit.Function{{
	Name:  "ScanUser",
	Into:  "User",
	Query: "SELECT id, name AS full_name\nFROM users",
	Plan:  userPlan,
}, {
	Name:  "ScanPost",
	Into:  "Post",
	Query: "SELECT title FROM posts",
	Plan:  postPlan,
}}

// schemaStub declares the symbols the generated file of fileFunctions
// refers to.
const schemaStub = `package blog

type column[T any] struct{}

func (column[T]) Parse(v any) (T, error) {
	t, _ := v.(T)
	return t, nil
}

var UsersSchema = struct {
	ID   column[int64]
	NAME column[string]
}{}

var PostsSchema = struct {
	TITLE column[string]
}{}

type User struct {
	id        int64
	full_name string
}

type Post struct {
	title string
}
`

func (s *EmitSuite) TestFile(c *C) {
	src, err := emit.File("blog", fileFunctions)
	c.Assert(err, IsNil)
	code := string(src)

	c.Check(strings.HasPrefix(code, "// Code generated by sqlgen. DO NOT EDIT.\n\npackage blog\n"), Equals, true)
	c.Check(code, Matches, `(?s).*// ScanUser builds a User from a result row of:\n//\n//\tSELECT id, name AS full_name\n//\tFROM users\nfunc ScanUser\(row \[\]any\) \(User, error\) \{\n.*`)
	c.Check(code, Matches, `(?s).*// ScanPost builds a Post from a result row of:\n//\n//\tSELECT title FROM posts\nfunc ScanPost\(row \[\]any\) \(Post, error\) \{\n.*`)
	c.Check(strings.Index(code, "func ScanUser") < strings.Index(code, "func ScanPost"), Equals, true)
}

func (s *EmitSuite) TestFileTypeChecks(c *C) {
	src, err := emit.File("blog", fileFunctions)
	c.Assert(err, IsNil)

	fset := token.NewFileSet()
	generated, err := parser.ParseFile(fset, "blog_gen.go", src, parser.ParseComments)
	c.Assert(err, IsNil)
	stub, err := parser.ParseFile(fset, "schema.go", schemaStub, 0)
	c.Assert(err, IsNil)

	conf := types.Config{}
	pkg, err := conf.Check("blog", fset, []*ast.File{generated, stub}, nil)
	c.Assert(err, IsNil)

	fn, ok := pkg.Scope().Lookup("ScanUser").(*types.Func)
	c.Assert(ok, Equals, true)
	c.Check(fn.Type().String(), Equals, "func(row []any) (blog.User, error)")
}

func (s *EmitSuite) TestFileUnknownSchemaFailsToCompile(c *C) {
	src, err := emit.File("blog", []emit.Function{{
		Name: "ScanComment",
		Into: "Post",
		Plan: []expr.Field{{Table: "comments", Column: "body", Target: "title", Schema: "CommentsSchema", ColumnIdent: "BODY"}},
	}})
	c.Assert(err, IsNil)

	fset := token.NewFileSet()
	generated, err := parser.ParseFile(fset, "blog_gen.go", src, 0)
	c.Assert(err, IsNil)
	stub, err := parser.ParseFile(fset, "schema.go", schemaStub, 0)
	c.Assert(err, IsNil)

	conf := types.Config{Error: func(error) {}}
	_, err = conf.Check("blog", fset, []*ast.File{generated, stub}, nil)
	c.Check(err, ErrorMatches, `.*undefined: CommentsSchema`)
}

func (s *EmitSuite) TestFileErrors(c *C) {
	tests := []struct {
		summary string
		pkg     string
		fns     []emit.Function
		err     string
	}{{
		summary: "package keyword",
		pkg:     "type",
		fns:     fileFunctions,
		err:     `cannot emit file: invalid identifier "type" for package`,
	}, {
		summary: "bad function name",
		pkg:     "blog",
		fns:     []emit.Function{{Name: "scan-user", Into: "User", Plan: userPlan}},
		err:     `cannot emit file: invalid identifier "scan-user" for function`,
	}, {
		summary: "qualified result type",
		pkg:     "blog",
		fns:     []emit.Function{{Name: "ScanUser", Into: "models.User", Plan: userPlan}},
		err:     `cannot emit file: invalid identifier "models.User" for result type of ScanUser`,
	}, {
		summary: "function declared twice",
		pkg:     "blog",
		fns:     []emit.Function{fileFunctions[0], fileFunctions[0]},
		err:     `cannot emit file: duplicate field: function "ScanUser" declared twice`,
	}}
	for _, t := range tests {
		_, err := emit.File(t.pkg, t.fns)
		c.Check(err, ErrorMatches, t.err, Commentf(t.summary))
	}
}

func (s *EmitSuite) TestFileDeterministic(c *C) {
	first, err := emit.File("blog", fileFunctions)
	c.Assert(err, IsNil)
	again, err := emit.File("blog", fileFunctions)
	c.Assert(err, IsNil)
	c.Check(string(again), Equals, string(first))
}
