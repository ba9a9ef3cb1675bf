package main

import (
	"strings"
	"testing"

	"github.com/dpotapov/go-domx/dom"
)

func TestPassthrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "markup",
			input: "<!doctype html><!-- c --><P CLASS=x>a<br/>b",
			want:  `<!DOCTYPE html><!-- c --><p class="x">a<br>b`,
		},
		{
			name:  "quotes and backslashes",
			input: `<a title='say "hi"' href='C:\x' alt="it's">x</a>`,
			want:  `<a title='say "hi"' href="C:\x" alt="it's">x</a>`,
		},
		{
			name:  "boolean attribute",
			input: "<input disabled value=''>",
			want:  "<input disabled value>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			if err := passthrough(&out, []byte(tt.input)); err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.want {
				t.Errorf("passthrough() = %q, want %q", out.String(), tt.want)
			}

			// The output reads back to the same attributes.
			a := dom.Build([]byte(tt.input)).Root().Dump()
			b := dom.Build([]byte(out.String())).Root().Dump()
			if a != b {
				t.Errorf("tree changed:\n%s\nwant:\n%s", b, a)
			}
		})
	}
}
