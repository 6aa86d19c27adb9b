package newsletter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderMarkdown converts the campaign body from markdown to HTML.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const campaignHeader = `<div style="background: #16a34a; padding: 28px; text-align: center;">
  <h1 style="color: #ffffff; margin: 0; font-size: 24px;">Association Al Wasl</h1>
  <p style="color: #dcfce7; margin: 8px 0 0; font-size: 14px;">جمعية الوصل</p>
</div>`

func campaignFooter(year int) string {
	return fmt.Sprintf(`<div style="background: #f3f4f6; padding: 20px; text-align: center; font-size: 12px; color: #6b7280;">
  <p style="margin: 0;">© %d Association Al Wasl. Tous droits réservés.</p>
  <p style="margin: 8px 0 0;">Vous recevez cet email car vous êtes inscrit à notre newsletter.</p>
</div>`, year)
}

// buildCampaignHTML wraps the rendered body in the association layout. The
// {firstName} placeholder is left intact for per-recipient substitution.
func buildCampaignHTML(body string, includeHeader, includeFooter bool) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
`)
	if includeHeader {
		b.WriteString(campaignHeader)
		b.WriteString("\n")
	}
	b.WriteString(`<div style="padding: 28px; color: #111827; line-height: 1.6;">`)
	b.WriteString(body)
	b.WriteString("</div>\n")
	if includeFooter {
		b.WriteString(campaignFooter(time.Now().Year()))
		b.WriteString("\n")
	}
	b.WriteString(`  </div>
</body>
</html>`)
	return b.String()
}

// personalize substitutes the {firstName} placeholder for one recipient.
func personalize(html, firstName string) string {
	return strings.ReplaceAll(html, "{firstName}", firstName)
}
