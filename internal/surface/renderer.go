package surface

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
)

const maxContentWidth = 100

// Cached glamour renderer, rebuilt only when the width changes.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// Page is a rendered document ready for the viewport.
type Page struct {
	Title    string
	Address  string
	Content  string // styled terminal text
	Markdown string
}

// Render converts an article into styled terminal text for the given width.
func Render(article *Article, width int) *Page {
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 4
	if contentWidth > maxContentWidth {
		contentWidth = maxContentWidth
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	md := toMarkdown(article)

	rendered, err := renderWithGlamour(md, contentWidth)
	if err != nil {
		rendered = md
	}

	return &Page{
		Title:    article.Title,
		Address:  article.FinalURL,
		Content:  rendered,
		Markdown: md,
	}
}

func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	return cachedRenderer.Render(markdown)
}

// toMarkdown converts the article HTML to markdown. If the HTML cannot be
// parsed the plain text is used.
func toMarkdown(article *Article) string {
	var md strings.Builder

	if article.Title != "" {
		md.WriteString("# " + article.Title + "\n\n")
	}
	if article.Byline != "" {
		md.WriteString("*" + strings.TrimSpace(article.Byline) + "*\n\n")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		md.WriteString(article.TextContent)
		return md.String()
	}

	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		md.WriteString(block(s, 0))
	})
	return md.String()
}

func block(s *goquery.Selection, depth int) string {
	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		level := int(tag[1] - '0')
		return strings.Repeat("#", level) + " " + text + "\n\n"
	case "p", "figcaption":
		text := strings.TrimSpace(inline(s))
		if text == "" {
			return ""
		}
		return text + "\n\n"
	case "ul", "ol":
		return list(s, tag == "ol", depth)
	case "blockquote":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			for _, line := range strings.Split(strings.TrimRight(block(child, 0), "\n"), "\n") {
				sb.WriteString("> " + line + "\n")
			}
		})
		return sb.String() + "\n"
	case "pre":
		return codeBlock(s)
	case "hr":
		return "---\n\n"
	case "br":
		return "\n"
	case "div", "article", "section", "main", "header", "footer", "figure", "span", "table", "tbody", "thead", "tr":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			sb.WriteString(block(child, depth))
		})
		if sb.Len() == 0 {
			if text := strings.TrimSpace(s.Text()); text != "" {
				return text + "\n\n"
			}
		}
		return sb.String()
	default:
		text := strings.TrimSpace(inline(s))
		if text == "" {
			return ""
		}
		return text + "\n\n"
	}
}

func inline(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			text := strings.TrimSpace(child.Text())
			href, ok := child.Attr("href")
			if !ok || href == "" {
				sb.WriteString(text)
				break
			}
			if text == "" {
				text = href
			}
			fmt.Fprintf(&sb, "[%s](%s)", text, href)
		case "strong", "b":
			sb.WriteString("**" + inline(child) + "**")
		case "em", "i":
			sb.WriteString("*" + inline(child) + "*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		case "img":
			alt, _ := child.Attr("alt")
			if alt == "" {
				alt = "image"
			}
			sb.WriteString("[" + alt + "]")
		case "ul", "ol":
			// nested lists are handled by list
		default:
			sb.WriteString(inline(child))
		}
	})
	return sb.String()
}

func list(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)

	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		prefix := indent + "- "
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, i+1)
		}
		sb.WriteString(prefix + strings.TrimSpace(inline(li)) + "\n")

		li.ChildrenFiltered("ul, ol").Each(func(_ int, child *goquery.Selection) {
			sb.WriteString(list(child, goquery.NodeName(child) == "ol", depth+1))
		})
	})

	if depth > 0 {
		return sb.String()
	}
	return sb.String() + "\n"
}

func codeBlock(s *goquery.Selection) string {
	code := s.Find("code")
	lang := ""
	text := s.Text()
	if code.Length() > 0 {
		text = code.Text()
		class, _ := code.Attr("class")
		for _, c := range strings.Fields(class) {
			if strings.HasPrefix(c, "language-") {
				lang = strings.TrimPrefix(c, "language-")
				break
			}
		}
	}
	return "```" + lang + "\n" + strings.TrimRight(text, "\n") + "\n```\n\n"
}
