package surface

import (
	"bytes"
	"fmt"
	"html"
	"net/url"

	readability "github.com/go-shiori/go-readability"
)

// Article is the readable part of a fetched page.
type Article struct {
	Title       string
	Byline      string
	Content     string // cleaned HTML
	TextContent string
	SiteName    string
	FinalURL    string
}

// Extract pulls the readable article out of an HTML response. Other content
// types are shown verbatim.
func Extract(result *FetchResult) (*Article, error) {
	if !IsHTML(result.ContentType) {
		return &Article{
			Title:       result.FinalURL,
			Content:     "<pre>" + html.EscapeString(string(result.Body)) + "</pre>",
			TextContent: string(result.Body),
			FinalURL:    result.FinalURL,
		}, nil
	}

	parsedURL, err := url.Parse(result.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(result.Body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	return &Article{
		Title:       article.Title,
		Byline:      article.Byline,
		Content:     article.Content,
		TextContent: article.TextContent,
		SiteName:    article.SiteName,
		FinalURL:    result.FinalURL,
	}, nil
}
