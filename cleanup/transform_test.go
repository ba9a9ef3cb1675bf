package cleanup

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpotapov/go-domx/dom"
)

func run(text string, tr Transform) string {
	doc := dom.Build([]byte(text))
	tr(doc.Root())
	return string(doc.Serialize())
}

func nonBlank(n *dom.Node) bool {
	return n.Type != dom.TextNode || strings.TrimSpace(n.Data) != ""
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name, text, want string
		tr               Transform
	}{
		{
			name: "allow attributes",
			text: `<a href="/x" onclick="evil()" HREF="y" title=t>x</a><img src=a.png style="s">`,
			want: `<a href="/x" href="y">x</a><img src="a.png">`,
			tr:   AllowAttributes("href", "SRC"),
		},
		{
			name: "drop",
			text: `<p>a<script>x()</script><style>p{}</style>b</p>`,
			want: `<p>ab</p>`,
			tr:   Drop("script", "STYLE"),
		},
		{
			name: "unwrap nested",
			text: `<p><font color=red>a<font>b</font></font>c</p>`,
			want: `<p>abc</p>`,
			tr:   Unwrap("font"),
		},
		{
			name: "unwrap keeps order",
			text: `<div><span>a<b>b</b></span><span>c</span></div>`,
			want: `<div>a<b>b</b>c</div>`,
			tr:   Unwrap("span"),
		},
		{
			name: "prune empty",
			text: `<div><p></p><p> </p><p class=" "></p><p id="x"></p><b><i></i></b></div>`,
			want: `<div><p> </p><p id="x"></p></div>`,
			tr:   PruneEmpty("p", "b", "i"),
		},
		{
			name: "prune empty boolean attribute",
			text: `<span hidden></span>`,
			want: ``,
			tr:   PruneEmpty("span"),
		},
		{
			name: "prune empty only named tags",
			text: `<div></div><p></p>`,
			want: `<div></div>`,
			tr:   PruneEmpty("p"),
		},
		{
			name: "collapse whitespace",
			text: "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>",
			want: `<ul><li>a</li> <li>b</li></ul>`,
			tr:   CollapseWhitespace(),
		},
		{
			name: "collapse whitespace merges text",
			text: `<p>a<!-- x -->b<!-- y -->  </p>`,
			want: `<p>ab  </p>`,
			tr:   CollapseWhitespace(),
		},
		{
			name: "collapse whitespace keeps pre",
			text: "<pre>  x\n\n</pre><p> </p>",
			want: "<pre>  x\n\n</pre><p></p>",
			tr:   CollapseWhitespace(),
		},
		{
			name: "collapse whitespace at the top level",
			text: "  <p>x</p> \n",
			want: `<p>x</p>`,
			tr:   CollapseWhitespace(),
		},
		{
			name: "retain",
			text: `<p> <b>x</b> </p>`,
			want: `<p><b>x</b></p>`,
			tr:   Retain(nonBlank),
		},
		{
			name: "chain",
			text: `<div><span> </span><p>a<font>b</font></p></div>`,
			want: `<div><p>ab</p></div>`,
			tr:   Chain(Unwrap("font"), CollapseWhitespace(), PruneEmpty("span")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.text, tt.tr))
		})
	}
}

func TestRootIsKept(t *testing.T) {
	doc := dom.Build([]byte(`<pre class="x"> <span></span> </pre>`))
	pre := doc.Root().FirstChild

	Apply(pre, Unwrap("pre"), Drop("pre"), PruneEmpty("pre", "span"), AllowAttributes())
	assert.Equal(t, "<pre>  </pre>", pre.String())

	// A pre root keeps its whitespace.
	CollapseWhitespace()(pre)
	assert.Equal(t, "<pre>  </pre>", pre.String())
}

func randomMarkup(rnd *rand.Rand, n int) []byte {
	pieces := []string{
		"<p>", "</p>", "<b>", "</b>", "<i>", "<pre>", "</pre>", "<span class=x>", "<span class=' '>",
		"<font>", "</font>", "<br>", "<!-- c -->", " ", "\n", "a", "b c", "<script>x</script>",
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(pieces[rnd.Intn(len(pieces))])
	}
	return []byte(b.String())
}

func TestIdempotence(t *testing.T) {
	filter, err := Filter(`is_text || tag != "b" || depth > 1`)
	if err != nil {
		t.Fatal(err)
	}
	transforms := map[string]Transform{
		"AllowAttributes":    AllowAttributes("href"),
		"Drop":               Drop("script", "i"),
		"Unwrap":             Unwrap("span", "font"),
		"PruneEmpty":         PruneEmpty("p", "b", "i", "span", "pre"),
		"CollapseWhitespace": CollapseWhitespace(),
		"Retain":             Retain(nonBlank),
		"Filter":             filter,
	}
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		in := randomMarkup(rnd, rnd.Intn(25))
		for name, tr := range transforms {
			doc := dom.Build(in)
			tr(doc.Root())
			once := doc.String()
			tr(doc.Root())
			if twice := doc.String(); once != twice {
				t.Fatalf("%s is not idempotent on %q:\n----\n%s----\n%s----", name, in, once, twice)
			}
		}
	}
}
