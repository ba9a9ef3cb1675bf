package domx

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/dpotapov/go-domx/cleanup"
	"github.com/dpotapov/go-domx/dom"
)

func TestCleaner_Clean(t *testing.T) {
	tests := []struct {
		name  string
		c     *Cleaner
		input string
		want  string
	}{
		{
			name:  "zero value balances tags",
			c:     &Cleaner{},
			input: "<p>Hello<b>World</p>",
			want:  "<p>Hello<b>World</b></p>",
		},
		{
			name:  "void element",
			c:     &Cleaner{},
			input: `<img src="a.png">`,
			want:  `<img src="a.png">`,
		},
		{
			name:  "unterminated attribute",
			c:     &Cleaner{},
			input: `<a href='x>broken`,
			want:  `<a href="x>broken"></a>`,
		},
		{
			name:  "implied end tags",
			c:     &Cleaner{Options: dom.Options{ImpliedEndTags: dom.HTMLImpliedEndTags}},
			input: "<ul><li>One<li>Two</ul>",
			want:  "<ul><li>One</li><li>Two</li></ul>",
		},
		{
			name: "transforms",
			c: &Cleaner{Transforms: []cleanup.Transform{
				cleanup.AllowAttributes("href"),
				cleanup.PruneEmpty("span"),
			}},
			input: `<a href="/" class="x">home</a><span class="y"></span>`,
			want:  `<a href="/">home</a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.c.Clean([]byte(tt.input))); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleaner_Policy(t *testing.T) {
	f, err := os.Open("testdata/policy.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	p, err := cleanup.LoadPolicy(f)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCleanerFromPolicy(p)
	if err != nil {
		t.Fatal(err)
	}

	in, err := os.Open("testdata/messy.html")
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	var out strings.Builder
	if err := c.CleanReader(&out, in); err != nil {
		t.Fatal(err)
	}

	want := "<!DOCTYPE html><html><body><p>Hello, world!\n  </p> " +
		`<ul><li><a href="/one">One</a></li><li>Two` + "\n  </li></ul></body></html>"
	if out.String() != want {
		t.Errorf("CleanReader() got:\n%s\nwant:\n%s", out.String(), want)
	}

	// Cleaning is stable.
	if again := string(c.Clean([]byte(want))); again != want {
		t.Errorf("Clean() is not stable:\n%s", again)
	}
}

func TestCleaner_PolicyError(t *testing.T) {
	if _, err := NewCleanerFromPolicy(cleanup.Policy{Filter: "tag +"}); err == nil {
		t.Error("NewCleanerFromPolicy() err = nil, want a compile error")
	}
}

func TestCleaner_CleanReaderErrors(t *testing.T) {
	c := &Cleaner{}

	boom := errors.New("boom")
	err := c.CleanReader(&bytes.Buffer{}, iotest.ErrReader(boom))
	if !errors.Is(err, boom) || err.Error() != "read document: boom" {
		t.Errorf("CleanReader() err = %v", err)
	}

	err = c.CleanReader(failWriter{boom}, strings.NewReader("<p>x"))
	if !errors.Is(err, boom) || err.Error() != "write document: boom" {
		t.Errorf("CleanReader() err = %v", err)
	}
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestCleaner_Logging(t *testing.T) {
	var buf bytes.Buffer
	c := &Cleaner{
		Transforms: []cleanup.Transform{cleanup.Drop("b")},
		Logger:     slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	c.Clean([]byte("<p>a<b>b</b></span>"))

	out := buf.String()
	for _, want := range []string{
		`msg="Ignore unmatched end tag" tag=span`,
		`msg="Clean document" bytes=19 nodes=4 kept=2 transforms=1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output misses %q:\n%s", want, out)
		}
	}
}

func TestCleaner_Concurrent(t *testing.T) {
	c := &Cleaner{Transforms: []cleanup.Transform{cleanup.CollapseWhitespace()}}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := string(c.Clean([]byte("<p> a </p> "))); got != "<p> a </p>" {
				t.Errorf("Clean() = %q", got)
			}
		}()
	}
	wg.Wait()
}
