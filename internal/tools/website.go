package tools

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/baalimago/dlai/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// webClient bounds tool fetches the same way provider calls are bounded.
var webClient = &http.Client{Timeout: 10 * time.Second}

type WebsiteTextTool models.ToolDescriptor

var WebsiteText = WebsiteTextTool{
	Name:        "website_text",
	Description: "Get the text content of a website by stripping all non-text tags and trimming whitespace.",
	Parameters: models.ParameterSchema{
		Type: "object",
		Properties: map[string]models.ParameterProperty{
			"url": {
				Type:        "string",
				Description: "The URL of the website to retrieve the text content from.",
			},
		},
		Required: []string{"url"},
	},
}

func (w WebsiteTextTool) Call(args map[string]any) (string, error) {
	url, ok := args["url"].(string)
	if !ok || strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("url must be a non-empty string")
	}
	resp, err := webClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch website: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch website: status %v", resp.Status)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode website charset: %w", err)
	}

	var text strings.Builder
	tokenizer := html.NewTokenizer(reader)
	skipDepth := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return text.String(), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken:
			if name, _ := tokenizer.TagName(); isNonText(name) {
				skipDepth++
			}
		case html.EndTagToken:
			if name, _ := tokenizer.TagName(); isNonText(name) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			trimmed := bytes.TrimSpace(tokenizer.Text())
			if len(trimmed) > 0 {
				text.Write(trimmed)
				text.WriteRune('\n')
			}
		}
	}
}

func isNonText(tagName []byte) bool {
	return bytes.Equal(tagName, []byte("script")) || bytes.Equal(tagName, []byte("style"))
}

func (w WebsiteTextTool) Descriptor() models.ToolDescriptor {
	return models.ToolDescriptor(WebsiteText)
}
