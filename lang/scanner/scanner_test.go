package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/scanner"
	"github.com/ponos-lang/ponos/lang/token"
)

func scanAll(t *testing.T, src string) []scanner.TokenInfo {
	t.Helper()
	sc := scanner.New(src)
	var out []scanner.TokenInfo
	for {
		tok, err := sc.Scan()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Tok == token.EOF {
			return out
		}
	}
}

func TestScanPunctAndKeywords(t *testing.T) {
	toks := scanAll(t, "перем x = 1 + 2")
	want := []token.Token{token.VAR, token.IDENT, token.EQ, token.NUMBER, token.PLUS, token.NUMBER, token.EOF}
	got := make([]token.Token, len(toks))
	for i, tk := range toks {
		got[i] = tk.Tok
	}
	assert.Equal(t, want, got)
}

func TestScanTwoCharOperators(t *testing.T) {
	toks := scanAll(t, "a == b != c <= d >= e")
	var ops []token.Token
	for _, tk := range toks {
		switch tk.Tok {
		case token.EQEQ, token.BANGEQ, token.LE, token.GE:
			ops = append(ops, tk.Tok)
		}
	}
	assert.Equal(t, []token.Token{token.EQEQ, token.BANGEQ, token.LE, token.GE}, ops)
}

func TestScanNumber(t *testing.T) {
	toks := scanAll(t, "3.5 10 2e3")
	require.Len(t, toks, 4)
	assert.Equal(t, 3.5, toks[0].Num)
	assert.Equal(t, float64(10), toks[1].Num)
	assert.Equal(t, 2000.0, toks[2].Num)
}

func TestScanStringEscapes(t *testing.T) {
	toks := scanAll(t, `"привет\nмир"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Tok)
	assert.Equal(t, "привет\nмир", toks[0].Str)
}

func TestScanLineComment(t *testing.T) {
	toks := scanAll(t, "1 // это комментарий\n2")
	require.Len(t, toks, 3)
	assert.Equal(t, float64(1), toks[0].Num)
	assert.Equal(t, float64(2), toks[1].Num)
}

func TestScanIllegalCharacter(t *testing.T) {
	sc := scanner.New("@")
	_, err := sc.Scan()
	assert.Error(t, err)
}

func TestScanPositionTracking(t *testing.T) {
	toks := scanAll(t, "a\nb")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
}
