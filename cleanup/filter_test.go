package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name, src, text, want string
	}{
		{
			name: "by tag",
			src:  `tag != "font"`,
			text: `<p><font>x</font>y</p>`,
			want: `<p>y</p>`,
		},
		{
			name: "by attribute, first duplicate wins",
			src:  `is_text || attr["class"] != "ad"`,
			text: `<div class="ad">x</div><div class="a" class="ad">y</div>`,
			want: `<div class="a" class="ad">y</div>`,
		},
		{
			name: "by depth",
			src:  `depth < 2`,
			text: `<a><b><c>x</c></b></a>`,
			want: `<a><b></b></a>`,
		},
		{
			name: "by text",
			src:  `!(is_text && text contains "spam")`,
			text: `<p>ham</p><p>spam</p>`,
			want: `<p>ham</p><p></p>`,
		},
		{
			name: "run-time errors keep the node",
			src:  `!is_text || int(text) > 20`,
			text: `<p>12</p><p>abc</p><p>42</p>`,
			want: `<p></p><p>abc</p><p>42</p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Filter(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, run(tt.text, f))
		})
	}
}

func TestFilterCompileError(t *testing.T) {
	for _, src := range []string{`tag +`, `tag`, `unknown == 1`} {
		_, err := Filter(src)
		require.Error(t, err, src)
		assert.Contains(t, err.Error(), "compile filter: ", src)
	}
}
