package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBasicHTML(t *testing.T) {
	article := &Article{
		Title:  "Test Page",
		Byline: "By Author",
		Content: `<div><p>Hello <strong>bold</strong> and <em>italic</em> with a <a href="https://golang.org">Go link</a>.</p>
<ul><li>one</li><li>two<ul><li>nested</li></ul></li></ul>
<ol><li>first</li></ol>
<pre><code class="language-go">func main() {}</code></pre>
<blockquote><p>quoted</p></blockquote>
<h2>Section</h2></div>`,
	}

	page := Render(article, 80)
	md := page.Markdown

	assert.Contains(t, md, "# Test Page")
	assert.Contains(t, md, "*By Author*")
	assert.Contains(t, md, "Hello **bold** and *italic* with a [Go link](https://golang.org).")
	assert.Contains(t, md, "- one\n- two\n  - nested\n")
	assert.Contains(t, md, "1. first")
	assert.Contains(t, md, "```go\nfunc main() {}\n```")
	assert.Contains(t, md, "> quoted")
	assert.Contains(t, md, "## Section")
	assert.NotEmpty(t, page.Content)
	assert.Equal(t, "Test Page", page.Title)
}

func TestRenderEmptyArticle(t *testing.T) {
	page := Render(&Article{TextContent: "some text"}, 0)
	assert.NotNil(t, page)
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML("text/html; charset=utf-8"))
	assert.True(t, IsHTML("application/xhtml+xml"))
	assert.False(t, IsHTML("application/json"))
}
