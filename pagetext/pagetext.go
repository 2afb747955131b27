// Package pagetext produces a cleaned markdown rendition of a fetched
// page, used as an optional report appendix. Raw HTML is sanitised
// before conversion so script and style payloads never reach a report.
package pagetext

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Converter turns raw page HTML into sanitised markdown. It is safe to
// reuse across calls.
type Converter struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// New creates a Converter with the UGC sanitisation policy and the
// commonmark + table conversion plugins.
func New() *Converter {
	return &Converter{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Markdown sanitises the HTML and converts it to trimmed markdown.
func (c *Converter) Markdown(html []byte) (string, error) {
	clean := c.policy.SanitizeBytes(html)
	md, err := c.conv.ConvertString(string(clean))
	if err != nil {
		return "", fmt.Errorf("pagetext: convert: %w", err)
	}
	return strings.TrimSpace(md), nil
}
