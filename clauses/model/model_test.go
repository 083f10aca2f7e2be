package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermString(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{
			name: "plain atom",
			term: NewAtom("tom"),
			want: "tom",
		},
		{
			name: "atom needing quotes",
			term: NewAtom("New York"),
			want: "'New York'",
		},
		{
			name: "symbolic atom",
			term: NewAtom("=<"),
			want: "=<",
		},
		{
			name: "comma functor is quoted",
			term: NewCompound(",", NewAtom("a"), NewAtom("b")),
			want: "','(a,b)",
		},
		{
			name: "compound",
			term: NewCompound("parent", NewAtom("tom"), NewVariable("X")),
			want: "parent(tom,X)",
		},
		{
			name: "number keeps literal",
			term: NewNumber("1.50"),
			want: "1.50",
		},
		{
			name: "string",
			term: NewString("hi \"there\""),
			want: `"hi \"there\""`,
		},
		{
			name: "empty list",
			term: NewList(nil, nil),
			want: "[]",
		},
		{
			name: "partial list",
			term: NewList([]Term{NewVariable("H")}, NewVariable("T")),
			want: "[H|T]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestIsCallable(t *testing.T) {
	assert.True(t, IsCallable(NewAtom("go")))
	assert.True(t, IsCallable(NewCompound("f", NewNumber("1"))))
	assert.False(t, IsCallable(NewVariable("X")))
	assert.False(t, IsCallable(NewNumber("1")))
	assert.False(t, IsCallable(NewString("s")))
	assert.False(t, IsCallable(NewList(nil, nil)))
}

func TestEqual(t *testing.T) {
	a := NewCompound("f", NewList([]Term{NewNumber("1")}, NewVariable("T")))
	b := NewCompound("f", NewList([]Term{NewNumber("1")}, NewVariable("T")))
	c := NewCompound("f", NewList([]Term{NewNumber("1.0")}, NewVariable("T")))

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestClauseIndicatorAndString(t *testing.T) {
	fact := &Clause{Kind: Fact, Head: NewCompound("parent", NewAtom("tom"), NewAtom("bob"))}
	rule := &Clause{
		Kind: Rule,
		Head: NewCompound("ancestor", NewVariable("X"), NewVariable("Y")),
		Body: []Term{NewCompound("parent", NewVariable("X"), NewVariable("Y"))},
	}
	query := &Clause{Kind: Query, Body: []Term{NewAtom("go")}}

	assert.Equal(t, "parent/2", fact.Indicator())
	assert.Equal(t, "parent(tom,bob).", fact.String())
	assert.True(t, fact.IsFact())

	assert.Equal(t, "ancestor/2", rule.Indicator())
	assert.Equal(t, "ancestor(X,Y) :- parent(X,Y).", rule.String())
	assert.False(t, rule.IsFact())

	assert.Equal(t, "", query.Indicator())
	assert.Equal(t, "?- go.", query.String())
}

func TestProgramPredicates(t *testing.T) {
	prog := NewProgram()
	prog.AddClause(&Clause{Kind: Fact, Head: NewCompound("p", NewNumber("1"))})
	prog.AddClause(&Clause{Kind: Fact, Head: NewAtom("q")})
	prog.AddClause(&Clause{Kind: Fact, Head: NewCompound("p", NewNumber("2"))})
	prog.AddClause(&Clause{Kind: Query, Body: []Term{NewAtom("q")}})

	assert.Equal(t, []string{"p/1", "q/0"}, prog.Predicates())
}
