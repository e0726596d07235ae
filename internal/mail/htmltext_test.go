package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs and breaks",
			in:   "<p>Hi Curtis,</p><p>Can we talk<br>tomorrow?</p>",
			want: "Hi Curtis,\n\nCan we talk\ntomorrow?",
		},
		{
			name: "drops style and script",
			in:   "<html><head><style>p{color:red}</style></head><body><script>x()</script>Hello</body></html>",
			want: "Hello",
		},
		{
			name: "links keep target",
			in:   `See <a href="https://example.com/brief">the brief</a> and <a href="#top">top</a>.`,
			want: "See the brief (https://example.com/brief) and top.",
		},
		{
			name: "list items",
			in:   "<ul><li>One</li><li>Two</li></ul>",
			want: "- One\n- Two",
		},
		{
			name: "collapses source whitespace and nbsp",
			in:   "<div>\n   Lots   of\n\tspace&nbsp;here\n</div>",
			want: "Lots of space here",
		},
		{
			name: "image alt text",
			in:   `<img src="logo.png" alt="Logo"> Welcome`,
			want: "[Logo] Welcome",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.in))
		})
	}
}
