package newsletter

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/mail"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, email string, role models.UserRole, status models.UserStatus, optIn bool) {
	t.Helper()
	u := &models.UserModel{
		Email: email, PasswordHash: "x", FirstName: "F", LastName: "L",
		Role: role, Status: status, NewsletterOptIn: optIn,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	// A false opt-in is a zero value, which Create defers to the column
	// default; force it explicitly.
	if !optIn {
		if err := db.Model(u).Update("newsletter_opt_in", false).Error; err != nil {
			t.Fatalf("opt out %s: %v", email, err)
		}
	}
}

func TestRecipientsTargeting(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, mail.NewSender(mail.Config{}), "https://alwasl.example", zap.NewNop())

	seed(t, db, "m1@example.com", models.RoleMember, models.StatusActive, true)
	seed(t, db, "m2@example.com", models.RoleMember, models.StatusPending, true)
	seed(t, db, "p1@example.com", models.RoleProfessional, models.StatusActive, true)
	seed(t, db, "out@example.com", models.RoleMember, models.StatusActive, false)

	cases := []struct {
		target string
		want   int
	}{
		{TargetAll, 3},
		{TargetMembers, 2},
		{TargetProfessionals, 1},
		{TargetActive, 2},
	}
	for _, c := range cases {
		got, err := svc.recipients(c.target)
		if err != nil {
			t.Fatalf("recipients(%s): %v", c.target, err)
		}
		if len(got) != c.want {
			t.Errorf("recipients(%s) = %d, want %d", c.target, len(got), c.want)
		}
	}

	if _, err := svc.recipients("everyone"); !errors.Is(err, ErrBadTarget) {
		t.Errorf("bad target err = %v", err)
	}
}

func TestSendRequiresMailer(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, mail.NewSender(mail.Config{Enable: false}), "https://alwasl.example", zap.NewNop())
	seed(t, db, "m@example.com", models.RoleMember, models.StatusActive, true)

	_, err := svc.Send(SendInput{Target: TargetAll, Subject: "Infos", Message: "Bonjour {firstName}"})
	if !errors.Is(err, ErrMailDisabled) {
		t.Errorf("err = %v, want ErrMailDisabled", err)
	}
}

func TestCampaignHTML(t *testing.T) {
	body, err := renderMarkdown("# Fête de l'association\n\nBonjour {firstName}, **bienvenue**.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "<strong>bienvenue</strong>") {
		t.Errorf("markdown not rendered: %q", body)
	}

	full := buildCampaignHTML(body, true, true)
	if !strings.Contains(full, "Association Al Wasl") {
		t.Error("header missing")
	}
	if !strings.Contains(full, "Tous droits réservés") {
		t.Error("footer missing")
	}

	bare := buildCampaignHTML(body, false, false)
	if strings.Contains(bare, "Tous droits réservés") {
		t.Error("footer present despite includeFooter=false")
	}

	got := personalize(full, "Nora")
	if strings.Contains(got, "{firstName}") {
		t.Error("placeholder not substituted")
	}
	if !strings.Contains(got, "Bonjour Nora") {
		t.Errorf("first name missing: %q", got)
	}
}

func TestHistoryAndPreview(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, mail.NewSender(mail.Config{}), "https://alwasl.example", zap.NewNop())
	seed(t, db, "m@example.com", models.RoleMember, models.StatusActive, true)

	for i := 0; i < 3; i++ {
		if err := db.Create(&models.NewsletterModel{
			Subject: fmt.Sprintf("Campagne %d", i), Content: "corps", Target: TargetAll,
			SentByID: "admin",
		}).Error; err != nil {
			t.Fatalf("seed campaign: %v", err)
		}
	}

	campaigns, err := svc.History(2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(campaigns) != 2 {
		t.Errorf("history len = %d, want 2", len(campaigns))
	}

	if err := db.Create(&models.EventModel{
		Title: "Iftar communautaire", EventDate: time.Now().Add(72 * time.Hour), IsPublished: true,
	}).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	p, err := svc.ComposePreview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if p.MemberCount != 1 {
		t.Errorf("memberCount = %d, want 1", p.MemberCount)
	}
	if len(p.LastCampaigns) != 3 {
		t.Errorf("lastCampaigns = %d, want 3", len(p.LastCampaigns))
	}
	if len(p.Events) != 1 {
		t.Errorf("events = %d, want 1", len(p.Events))
	}
}

func TestWeeklyDocument(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, mail.NewSender(mail.Config{}), "https://alwasl.example", zap.NewNop())

	now := time.Now()
	events := []models.EventModel{
		{Title: "Community iftar", TitleAr: "إفطار جماعي", EventDate: now.Add(72 * time.Hour), Location: "Lyon", IsPublished: true},
		{Title: "Past picnic", EventDate: now.Add(-72 * time.Hour), IsPublished: true},
		{Title: "Draft meetup", EventDate: now.Add(48 * time.Hour), IsPublished: false},
	}
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
	pub := now.Add(-time.Hour)
	if err := db.Create(&models.ArticleModel{
		Title: "Retour sur l'assemblée", Content: "corps", AuthorName: "Nora",
		IsPublished: true, PublishedAt: &pub,
	}).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}

	html, err := svc.Document([]NewsLink{
		{Title: "أخبار الجالية", URL: "https://news.example/1", Source: "Le Monde"},
	})
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	for _, want := range []string{
		`dir="rtl"`,
		"النشرة الأسبوعية",
		"إفطار جماعي",
		"أخبار الجالية",
		"المصدر: Le Monde",
		"Retour sur l&#39;assemblée",
		"https://alwasl.example/ar/evenements",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
	for _, reject := range []string{"Past picnic", "Draft meetup", "{firstName}"} {
		if strings.Contains(html, reject) {
			t.Errorf("document contains %q", reject)
		}
	}
}

func TestWeeklyDocumentWithoutContent(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, mail.NewSender(mail.Config{}), "https://alwasl.example", zap.NewNop())

	html, err := svc.Document(nil)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if !strings.Contains(html, "لا توجد فعاليات قادمة حالياً") {
		t.Error("empty events fallback missing")
	}
	if strings.Contains(html, "للقراءة هذا الأسبوع") {
		t.Error("links section rendered without links")
	}
	if strings.Contains(html, "مقالات من المجتمع") {
		t.Error("articles section rendered without articles")
	}
}

func TestCalendarFormatting(t *testing.T) {
	// First day of the tabular Islamic calendar.
	epoch := time.Date(622, time.July, 19, 12, 0, 0, 0, time.UTC)
	if got := hijriDate(epoch); got != "1 محرم 1" {
		t.Errorf("hijriDate(epoch) = %q", got)
	}

	d := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	if got := hijriDate(d); got != "18 ربيع الأول 1448" {
		t.Errorf("hijriDate(2026-09-01) = %q", got)
	}
	if got := gregorianArabic(d); got != "1 سبتمبر 2026" {
		t.Errorf("gregorianArabic(2026-09-01) = %q", got)
	}
}
