package newsletter

import (
	"bytes"
	"html/template"
	"time"

	"github.com/alwasl/core/internal/models"
)

// NewsLink is a curated external link included in the weekly document.
type NewsLink struct {
	Title  string `json:"title" binding:"required,max=300"`
	URL    string `json:"url" binding:"required,url"`
	Source string `json:"source" binding:"omitempty,max=120"`
}

type documentData struct {
	HijriDate     string
	GregorianDate string
	Year          int
	BaseURL       string
	Links         []NewsLink
	Events        []models.EventModel
	Articles      []models.ArticleModel
}

// The weekly document is a self-contained right-to-left page sized for A4,
// meant to be printed or saved as PDF from the browser.
var documentTmpl = template.Must(template.New("weekly").Funcs(template.FuncMap{
	"arabicDate": gregorianArabic,
}).Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>النشرة الأسبوعية</title>
<style>
  @page { size: A4; margin: 15mm; }
  body { font-family: 'Segoe UI', Tahoma, Arial, sans-serif; margin: 0; background: #ffffff; color: #1f2937; }
  .header { background: linear-gradient(135deg, #166534, #14532d); color: #ffffff; padding: 32px 28px; text-align: center; }
  .header h1 { margin: 0; font-size: 26px; }
  .header .latin { margin: 6px 0 0; font-size: 14px; color: #bbf7d0; }
  .header .dates { margin: 14px 0 0; font-size: 13px; color: #dcfce7; }
  .section { padding: 20px 28px; }
  .section h2 { font-size: 18px; color: #166534; border-bottom: 2px solid #bbf7d0; padding-bottom: 6px; }
  .item { margin: 0 0 14px; }
  .item .title { font-weight: bold; font-size: 15px; }
  .item .meta { font-size: 12px; color: #6b7280; margin-top: 2px; }
  .item a { color: #166534; }
  .empty { font-size: 13px; color: #6b7280; }
  .signup { background: #f0fdf4; padding: 18px 28px; text-align: center; font-size: 13px; }
  .footer { background: #1f2937; color: #d1d5db; padding: 18px 28px; text-align: center; font-size: 12px; }
</style>
</head>
<body>
<div class="header">
  <h1>جمعية الوصل</h1>
  <p class="latin">Association Al Wasl</p>
  <p class="latin">النشرة الأسبوعية</p>
  <p class="dates">{{.HijriDate}} هـ &mdash; {{.GregorianDate}} م</p>
</div>
{{if .Links}}
<div class="section">
  <h2>&#128240; للقراءة هذا الأسبوع</h2>
  {{range .Links}}
  <div class="item">
    <div class="title"><a href="{{.URL}}">{{.Title}}</a></div>
    {{if .Source}}<div class="meta">المصدر: {{.Source}}</div>{{end}}
  </div>
  {{end}}
</div>
{{end}}
<div class="section">
  <h2>&#128467; الفعاليات القادمة</h2>
  {{if .Events}}
  {{range .Events}}
  <div class="item">
    <div class="title">{{if .TitleAr}}{{.TitleAr}}{{else}}{{.Title}}{{end}}</div>
    <div class="meta">{{arabicDate .EventDate}}{{if .Location}} &mdash; {{.Location}}{{end}}</div>
  </div>
  {{end}}
  {{else}}
  <p class="empty">لا توجد فعاليات قادمة حالياً</p>
  {{end}}
  <p class="meta"><a href="{{.BaseURL}}/ar/evenements">جميع الفعاليات على موقع الجمعية</a></p>
</div>
{{if .Articles}}
<div class="section">
  <h2>&#9997; مقالات من المجتمع</h2>
  {{range .Articles}}
  <div class="item">
    <div class="title"><a href="{{$.BaseURL}}/ar/articles/{{.ID}}">{{.Title}}</a></div>
    <div class="meta">&#9997; {{.AuthorName}}</div>
  </div>
  {{end}}
</div>
{{end}}
<div class="signup">
  <p>للانضمام إلى الجمعية واستلام النشرة بالبريد: <a href="{{.BaseURL}}/ar/inscription">{{.BaseURL}}/ar/inscription</a></p>
</div>
<div class="footer">
  <p>&copy; {{.Year}} Association Al Wasl &mdash; جمعية الوصل</p>
</div>
</body>
</html>`))

// buildDocumentHTML renders the weekly document for the given content.
func buildDocumentHTML(links []NewsLink, events []models.EventModel, articles []models.ArticleModel, baseURL string) (string, error) {
	now := time.Now()
	data := documentData{
		HijriDate:     hijriDate(now),
		GregorianDate: gregorianArabic(now),
		Year:          now.Year(),
		BaseURL:       baseURL,
		Links:         links,
		Events:        events,
		Articles:      articles,
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
