package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/canonicalize"
	"github.com/aster-lang/aster-core/internal/keytrans"
	"github.com/aster-lang/aster-core/internal/lexer"
	"github.com/aster-lang/aster-core/internal/lexicon"
	"github.com/aster-lang/aster-core/internal/parser"
)

func parseEnglish(t *testing.T, source string) *ast.Module {
	t.Helper()
	en := lexicon.English()
	canon := canonicalize.Canonicalize(source, canonicalize.Options{Lexicon: en})
	toks, lexDiags := lexer.Lex(canon)
	require.Empty(t, lexDiags)
	mod, parseDiags := parser.Parse(toks)
	require.Empty(t, parseDiags)
	return mod
}

func parseChinese(t *testing.T, source string) *ast.Module {
	t.Helper()
	zh := lexicon.ChineseSimplified()
	canon := canonicalize.Canonicalize(source, canonicalize.Options{Lexicon: zh})
	toks, lexDiags := lexer.Lex(canon)
	require.Empty(t, lexDiags)
	en := lexicon.English()
	table := keytrans.Build(zh, en)
	translated := keytrans.Translate(toks, table)
	mod, parseDiags := parser.Parse(translated)
	require.Empty(t, parseDiags)
	return mod
}

// Scenario 1 (spec.md §8): a single-param Rule returning its argument.
func TestParseScenario1Greet(t *testing.T) {
	mod := parseEnglish(t, "This module is Greet.\nRule greet given name: Text, produce Text:\n  Return name.\n")
	assert.Equal(t, "Greet", mod.Name)
	require.Len(t, mod.Decls, 1)

	fn, ok := mod.Decls[0].(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, "greet", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "name", fn.Params[0].Name)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Expr)
}

// Scenario 2 (spec.md §8): Chinese "若...为" compound resolves to a Match
// over an enum-constructor pattern via keyword translation + parser
// lookahead (the parser structurally detects INDENT followed by "When" to
// switch from an If to a Match, see parseIfOrMatch).
func TestParseScenarioChineseMatch(t *testing.T) {
	mod := parseChinese(t, "规则 检查 包含 状态，产出 文本：\n  若 状态：\n    为 成功，返回 「成功」。\n    为 失败，返回 「失败」。\n")
	require.Len(t, mod.Decls, 1)

	fn, ok := mod.Decls[0].(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, "检查", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "状态", fn.Params[0].Name)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Statements, 1)

	match, ok := fn.Body.Statements[0].(*ast.Match)
	require.True(t, ok, "If + When lookahead must parse as a Match, not a plain If")
	require.Len(t, match.Cases, 2)

	first, ok := match.Cases[0].Pattern.(*ast.PatternCtor)
	require.True(t, ok, "成功/失败 are enum constructor names, not bindings")
	assert.Equal(t, "成功", first.TypeName)
}

func TestParseDataDeclaration(t *testing.T) {
	mod := parseEnglish(t, "Define User with id: Text, age as Int.\n")
	require.Len(t, mod.Decls, 1)
	data, ok := mod.Decls[0].(*ast.Data)
	require.True(t, ok)
	assert.Equal(t, "User", data.Name)
	require.Len(t, data.Fields, 2)
	assert.Equal(t, "id", data.Fields[0].Name)
	assert.Equal(t, "age", data.Fields[1].Name)
}

func TestParseEnumDeclaration(t *testing.T) {
	mod := parseEnglish(t, "Define Status as one of Active, Inactive.\n")
	require.Len(t, mod.Decls, 1)
	en, ok := mod.Decls[0].(*ast.Enum)
	require.True(t, ok)
	assert.Equal(t, "Status", en.Name)
	assert.Equal(t, []string{"Active", "Inactive"}, en.Variants)
}

// Effect clause parsing (spec.md §4.E "EffClause"): explicit capability
// list must mark EffectCapsExplicit so the analyzer does not treat the
// declaration as an implicit "io" expansion (spec.md §4.H).
func TestParseFunctionWithExplicitEffectCapabilities(t *testing.T) {
	mod := parseEnglish(t, "Rule fetch given url: Text, produce Text:\n  It performs io [HTTP].\n  Return url.\n")
	fn := mod.Decls[0].(*ast.Func)
	assert.Contains(t, fn.Effects, "io")
	assert.True(t, fn.EffectCapsExplicit)
	assert.Contains(t, fn.EffectCaps, "HTTP")
}

// Scenario 3 case 1 (spec.md §8): an empty bracket list "[]" still means no
// capabilities were named explicitly; EffectCapsExplicit must stay false.
func TestParseFunctionWithEmptyExplicitCapabilityList(t *testing.T) {
	mod := parseEnglish(t, "Rule fetch given url: Text, produce Text:\n  It performs io [].\n  Return url.\n")
	fn := mod.Decls[0].(*ast.Func)
	assert.Contains(t, fn.Effects, "io")
	assert.Empty(t, fn.EffectCaps)
	assert.False(t, fn.EffectCapsExplicit)
}

// Scenario 3 case 2 (spec.md §8): a PascalCase capability named inline,
// without brackets, still counts as an explicit capability and must not be
// folded into Effects as a bogus lowercase effect identifier.
func TestParseFunctionWithInlineCapabilityName(t *testing.T) {
	mod := parseEnglish(t, "Rule fetch given url: Text, produce Text:\n  It performs io and cpu and Http.\n  Return url.\n")
	fn := mod.Decls[0].(*ast.Func)
	assert.Equal(t, []string{"io", "cpu"}, fn.Effects)
	assert.True(t, fn.EffectCapsExplicit)
	assert.Equal(t, []string{"HTTP"}, fn.EffectCaps)
}

func TestParseIfOtherwise(t *testing.T) {
	mod := parseEnglish(t, "Rule check given x: Int, produce Int:\n  If x:\n    Return x.\n  Otherwise:\n    Return 0.\n")
	fn := mod.Decls[0].(*ast.Func)
	ifStmt, ok := fn.Body.Statements[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
}

func TestParseErrorRecoversAtTopLevelBoundary(t *testing.T) {
	en := lexicon.English()
	canon := canonicalize.Canonicalize("Bogus nonsense.\nRule ok given x: Int, produce Int:\n  Return x.\n", canonicalize.Options{Lexicon: en})
	toks, lexDiags := lexer.Lex(canon)
	require.Empty(t, lexDiags)
	mod, diags := parser.Parse(toks)
	require.NotEmpty(t, diags, "malformed first declaration must produce a diagnostic")
	require.Len(t, mod.Decls, 1, "parser must recover and still parse the second declaration")
	fn, ok := mod.Decls[0].(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, "ok", fn.Name)
}

func TestParseIntOverflowDiagnostic(t *testing.T) {
	en := lexicon.English()
	canon := canonicalize.Canonicalize("Rule big, produce Int:\n  Return 99999999999999999999.\n", canonicalize.Options{Lexicon: en})
	toks, lexDiags := lexer.Lex(canon)
	require.Empty(t, lexDiags)
	_, diags := parser.Parse(toks)
	require.NotEmpty(t, diags)
	assert.Equal(t, "PARSE_INT_OVERFLOW", diags[0].Code)
}
