package render

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "keywords and identifiers",
			code: "export interface User",
			want: `<span class="keyword">export</span> <span class="keyword">interface</span> User`,
		},
		{
			name: "string containing a keyword",
			code: `x = 'const'`,
			want: `x = <span class="string">&#39;const&#39;</span>`,
		},
		{
			name: "numbers but not inside identifiers",
			code: "value_1: 42",
			want: `value_1: <span class="number">42</span>`,
		},
		{
			name: "line comment",
			code: "a // type <T>\nb",
			want: "a <span class=\"comment\">// type &lt;T&gt;</span>\nb",
		},
		{
			name: "block comment",
			code: "/** id */ id",
			want: `<span class="comment">/** id */</span> id`,
		},
		{
			name: "markup is escaped",
			code: `Record<string, "a" & "b">`,
			want: `Record&lt;string, <span class="string">&#34;a&#34;</span> &amp; <span class="string">&#34;b&#34;</span>&gt;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Highlight(tt.code)))
		})
	}
}

func TestHighlight_Unterminated(t *testing.T) {
	assert.Equal(t, `<span class="string">&#39;open</span>`+"\n"+`<span class="keyword">type</span>`,
		string(Highlight("'open\ntype")))
	assert.Equal(t, `<span class="comment">/* never closed</span>`, string(Highlight("/* never closed")))
}

func TestHighlight_TextRoundTrip(t *testing.T) {
	code := "export const LABELS: Record<Sector, string> = {\n  fintech: 'Paiements & cartes', // \"quoted\"\n  n: 3.5,\n}"
	out := string(Highlight(code))
	stripped := stripTags(out)
	assert.Equal(t, code, html.UnescapeString(stripped))
}

func stripTags(s string) string {
	var out []byte
	inTag := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '<':
			inTag = true
		case s[i] == '>' && inTag:
			inTag = false
		case !inTag:
			out = append(out, s[i])
		}
	}
	return string(out)
}
