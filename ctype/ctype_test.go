package ctype

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Basic
		expected bool
	}{
		{"same", Int, Int, true},
		{"int and float", Int, Float, false},
		{"char and int", Char, Int, false},
		{"void and void", Void, Void, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, test.a.IsCompatible(test.b), test.expected)
		})
	}
}

func TestIsCompatibleNil(t *testing.T) {
	be.True(t, !Int.IsCompatible(nil))
}

func TestLookup(t *testing.T) {
	typ, err := Lookup("float")
	be.Err(t, err, nil)
	be.Equal(t, typ, Float)

	_, err = Lookup("long")
	be.True(t, err != nil)
	be.Equal(t, err.Error(), "unknown type 'long'")
}
