package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarDefineValidation(t *testing.T) {
	tests := []struct {
		name    string
		op      Operator
		wantErr bool
	}{
		{"word operator", Operator{Name: "likes", Type: XFX, Priority: 700}, false},
		{"symbolic operator", Operator{Name: "=..", Type: XFX, Priority: 700}, false},
		{"prefix operator", Operator{Name: "not", Type: FY, Priority: 900}, false},
		{"priority too low", Operator{Name: "likes", Type: XFX, Priority: 0}, true},
		{"priority above argument limit", Operator{Name: "likes", Type: XFX, Priority: 1000}, true},
		{"unknown type", Operator{Name: "likes", Type: "xyz", Priority: 700}, true},
		{"name with space", Operator{Name: "is not", Type: XFX, Priority: 700}, true},
		{"uppercase name", Operator{Name: "Likes", Type: XFX, Priority: 700}, true},
		{"control operator", Operator{Name: ":-", Type: XFX, Priority: 700}, true},
		{"unlexable symbol", Operator{Name: "@@", Type: XFX, Priority: 700}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGrammar("test").Define(tt.op)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomWordOperator(t *testing.T) {
	g := StandardGrammar()
	require.NoError(t, g.Define(Operator{Name: "likes", Type: XFX, Priority: 700}))
	require.NoError(t, g.Define(Operator{Name: "not", Type: FY, Priority: 900}))

	clause := parseOne(t, "happy(X) :- X likes wine, not sad(X).", WithGrammar(g))
	assert.Equal(t, cmp("likes", vr("X"), atom("wine")), clause.Body[0])
	assert.Equal(t, cmp("not", cmp("sad", vr("X"))), clause.Body[1])

	// without the definition the same text is rejected
	_, err := ParseString("happy(X) :- X likes wine.")
	assert.Error(t, err)
}

func TestGrammarTiers(t *testing.T) {
	assert.True(t, StandardGrammar().Tiered())
	assert.False(t, FlatGrammar().Tiered())

	op, ok := StandardGrammar().Infix("*")
	require.True(t, ok)
	assert.Equal(t, 400, op.Priority)
	assert.Equal(t, YFX, op.Type)

	op, ok = FlatGrammar().Infix("*")
	require.True(t, ok)
	assert.Equal(t, 500, op.Priority)

	_, ok = StandardGrammar().Infix(`\+`)
	assert.False(t, ok)
	_, ok = StandardGrammar().Prefix(`\+`)
	assert.True(t, ok)
}

func TestGrammarOperatorsOrdering(t *testing.T) {
	ops := StandardGrammar().Operators()
	require.NotEmpty(t, ops)

	assert.Equal(t, `\+`, ops[0].Name)
	for i := 1; i < len(ops); i++ {
		assert.GreaterOrEqual(t, ops[i-1].Priority, ops[i].Priority)
	}
}

func TestGrammarByName(t *testing.T) {
	g, err := GrammarByName("flat")
	require.NoError(t, err)
	assert.Equal(t, "flat", g.Name)

	g, err = GrammarByName("")
	require.NoError(t, err)
	assert.Equal(t, "standard", g.Name)

	_, err = GrammarByName("ternary")
	assert.Error(t, err)
}
