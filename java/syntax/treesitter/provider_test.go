package treesitter

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"
	"go.uber.org/goleak"

	"github.com/dhamidi/jcomplete/java/syntax"
)

func parse(t *testing.T, src string, opts ...Option) (*syntax.CompilationUnit, error) {
	t.Helper()
	opts = append([]Option{WithLogger(commonlog.MOCK_LOGGER)}, opts...)
	return New(opts...).Parse(context.Background(), []byte(src))
}

func primary(t *testing.T, src string) *syntax.ClassDecl {
	t.Helper()
	cu, err := parse(t, src)
	require.NoError(t, err)
	cls, ok := cu.PrimaryType()
	require.True(t, ok, "expected a class-like primary type")
	return cls
}

func TestParseFieldsAndMethods(t *testing.T) {
	cls := primary(t, `package com.example;

import java.util.List;
import static java.util.Collections.*;

public class Counter {
    int count;
    static int TOTAL;
    private final List<String> names, aliases[];

    void run() {}
    static void init() {}
    public <T extends Comparable<T>> T max(List<T> items, int... limits) { return null; }
}
`)

	assert.Equal(t, syntax.ClassKindClass, cls.Kind)
	assert.Equal(t, "Counter", cls.Name)
	assert.True(t, cls.Modifiers.IsPublic())
	require.Len(t, cls.Members, 7)

	count := cls.Members[0].(*syntax.FieldDecl)
	assert.Equal(t, "count", count.Name)
	assert.Equal(t, "int", count.Type)
	assert.False(t, count.Modifiers.IsStatic())

	total := cls.Members[1].(*syntax.FieldDecl)
	assert.Equal(t, "TOTAL", total.Name)
	assert.True(t, total.Modifiers.IsStatic())

	names := cls.Members[2].(*syntax.FieldDecl)
	aliases := cls.Members[3].(*syntax.FieldDecl)
	assert.Equal(t, "names", names.Name)
	assert.Equal(t, "List<String>", names.Type)
	assert.Equal(t, "aliases", aliases.Name)
	assert.Equal(t, "List<String>[]", aliases.Type)
	assert.Equal(t, syntax.ModPrivate|syntax.ModFinal, aliases.Modifiers)

	run := cls.Members[4].(*syntax.MethodDecl)
	assert.Equal(t, "run", run.Name)
	assert.Equal(t, "void", run.ReturnType)
	assert.Empty(t, run.TypeParameters)

	initMethod := cls.Members[5].(*syntax.MethodDecl)
	assert.True(t, initMethod.Modifiers.IsStatic())

	maxMethod := cls.Members[6].(*syntax.MethodDecl)
	assert.Equal(t, "T", maxMethod.ReturnType)
	require.Len(t, maxMethod.TypeParameters, 1)
	assert.Equal(t, "T extends Comparable<T>", maxMethod.TypeParameters[0].String())
	assert.Equal(t, []syntax.Parameter{
		{Name: "items", Type: "List<T>"},
		{Name: "limits", Type: "int", Varargs: true},
	}, maxMethod.Parameters)
}

func TestParseCompilationUnitHeader(t *testing.T) {
	cu, err := parse(t, `package com.example;

import java.util.List;
import static java.util.Collections.*;

class A {}
class B {}
`)
	require.NoError(t, err)
	assert.Equal(t, "com.example", cu.Package)
	assert.Equal(t, []string{"java.util.List", "static java.util.Collections.*"}, cu.Imports)
	require.Len(t, cu.TypeDecls, 2)
	assert.Equal(t, "A", cu.TypeDecls[0].DeclName())
	assert.Equal(t, "B", cu.TypeDecls[1].DeclName())
}

func TestParseOtherMembers(t *testing.T) {
	cls := primary(t, `class Shape {
    Shape(int sides) {}
    { sides = 3; }
    static { }
    class Inner {}
}`)

	require.Len(t, cls.Members, 4)
	assert.IsType(t, &syntax.ConstructorDecl{}, cls.Members[0])
	assert.IsType(t, &syntax.InitializerDecl{}, cls.Members[1])
	assert.False(t, cls.Members[1].MemberModifiers().IsStatic())
	assert.True(t, cls.Members[2].MemberModifiers().IsStatic())
	inner, ok := cls.Members[3].(*syntax.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Inner", inner.Name)
}

func TestParseEnumAndRecord(t *testing.T) {
	enum := primary(t, `enum Color {
    RED, GREEN;
    int rgb;
    int rgb() { return rgb; }
}`)
	assert.Equal(t, syntax.ClassKindEnum, enum.Kind)
	require.Len(t, enum.Members, 4)
	red := enum.Members[0].(*syntax.FieldDecl)
	assert.Equal(t, "RED", red.Name)
	assert.Equal(t, "Color", red.Type)
	assert.True(t, red.Modifiers.IsStatic())
	assert.True(t, red.Modifiers.IsEnum())
	assert.Equal(t, "rgb", enum.Members[2].MemberName())

	record := primary(t, `record Point(int x, int y) {
    int sum() { return x + y; }
}`)
	assert.Equal(t, syntax.ClassKindRecord, record.Kind)
	require.Len(t, record.Members, 3)
	x := record.Members[0].(*syntax.FieldDecl)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, "int", x.Type)
	assert.Equal(t, syntax.ModPrivate|syntax.ModFinal|syntax.ModRecord, x.Modifiers)
	assert.Equal(t, "sum", record.Members[2].MemberName())
}

func TestParseInterfaceModifiersAreWritten(t *testing.T) {
	iface := primary(t, `interface Shape {
    int SIDES = 4;
    static int ZERO = 0;
    double area();
    default String label() { return "shape"; }
}`)
	assert.Equal(t, syntax.ClassKindInterface, iface.Kind)
	require.Len(t, iface.Members, 4)
	assert.False(t, iface.Members[0].MemberModifiers().IsStatic())
	assert.True(t, iface.Members[1].MemberModifiers().IsStatic())
	assert.Equal(t, "area", iface.Members[2].MemberName())
	assert.True(t, iface.Members[3].MemberModifiers().IsDefault())
}

func TestParseToleratesBrokenMethodBody(t *testing.T) {
	cls := primary(t, `class Counter {
    int count;
    void run() {
        this.co
    }
}`)
	require.Len(t, cls.Members, 2)
	assert.Equal(t, "count", cls.Members[0].MemberName())
	assert.Equal(t, "run", cls.Members[1].MemberName())
}

func TestParseStrictRejectsBrokenMethodBody(t *testing.T) {
	_, err := parse(t, `class Counter {
    int count;
    void run() {
        this.co
    }
}`, WithStrict(true))
	require.Error(t, err)
	assert.True(t, syntax.IsParseError(err))
}

func TestParseRejectsUnbalancedBraces(t *testing.T) {
	_, err := parse(t, `class Counter {
    int count;
    void run() {
`)
	require.Error(t, err)
	assert.True(t, syntax.IsParseError(err))
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithLogger(commonlog.MOCK_LOGGER)).Parse(ctx, []byte("class A {}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseModuleIsNotClassLike(t *testing.T) {
	cu, err := parse(t, `module com.example.app {
    requires java.base;
}`)
	require.NoError(t, err)
	require.Len(t, cu.TypeDecls, 1)
	_, ok := cu.PrimaryType()
	assert.False(t, ok)
	assert.Equal(t, "com.example.app", cu.TypeDecls[0].DeclName())
}

func TestParseDanglingThisBeforeLaterMembers(t *testing.T) {
	cls := primary(t, `class Main {
    private int count;
    void run() {
        this.
    }
    void stop() {}
    int size() { return count; }
}`)
	var names []string
	for _, m := range cls.Members {
		names = append(names, m.MemberName())
	}
	assert.Equal(t, []string{"count", "run", "stop", "size"}, names)
}

func TestParseDanglingThisOnOneLine(t *testing.T) {
	cls := primary(t, `class Main { private int count; void run() { this. } void stop() {} }`)
	require.Len(t, cls.Members, 3)
	assert.Equal(t, "stop", cls.Members[2].MemberName())
}

func TestParseDanglingThisKeepsUnbalancedBracesFailing(t *testing.T) {
	_, err := parse(t, `class Counter {
    int count;
    void run() {
        this.
`)
	require.Error(t, err)
	assert.True(t, syntax.IsParseError(err))
}

func TestParseStrictDoesNotRepairDanglingThis(t *testing.T) {
	_, err := parse(t, `class Main {
    void run() {
        this.
    }
    void stop() {}
}`, WithStrict(true))
	require.Error(t, err)
}

func TestCloseDanglingAccess(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		ok   bool
	}{
		{"before brace", "{ this.\n}", "{ this.x\n}", true},
		{"before paren", "f(this.)", "f(this.x)", true},
		{"end of input", "this.", "this.x", true},
		{"after call", "a().}", "a().x}", true},
		{"comment between", "this. // here\n}", "this.x // here\n}", true},
		{"member follows", "this.count;", "this.count;", false},
		{"next line member", "this.\n count++;", "this.\n count++;", false},
		{"varargs", "String... args)", "String... args)", false},
		{"float literal", "double d = 1.;", "double d = 1.;", false},
		{"leading dot", ".}", ".}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := closeDanglingAccess([]byte(tt.src))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// bigSource returns a valid class large enough that parsing it takes far
// longer than a millisecond.
func bigSource() []byte {
	var sb strings.Builder
	sb.WriteString("class Big {\n")
	for i := 0; i < 50000; i++ {
		sb.WriteString("    int f" + strconv.Itoa(i) + ";\n")
		sb.WriteString("    void m" + strconv.Itoa(i) + "() { int x = 1 + 2 * (3 - f0); }\n")
	}
	sb.WriteString("}\n")
	return []byte(sb.String())
}

func TestParseStopsOnDeadline(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := bigSource()
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	_, err := New(WithLogger(commonlog.MOCK_LOGGER)).Parse(ctx, src)
	require.Error(t, err)
	assert.True(t, syntax.IsParseError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeoutStopsTreeSitter(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := bigSource()
	p := syntax.WithTimeout(New(WithLogger(commonlog.MOCK_LOGGER)), time.Millisecond)
	_, err := p.Parse(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
