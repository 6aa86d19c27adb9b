package directory

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
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

func seedProfile(t *testing.T, db *gorm.DB, email, slug, cat string, published bool) *models.ProfessionalProfile {
	t.Helper()
	u := &models.UserModel{
		Email: email, PasswordHash: "x", FirstName: "F", LastName: "L",
		Role: models.RoleProfessional, Status: models.StatusActive,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	p := &models.ProfessionalProfile{
		UserID: u.ID, Profession: "Artisan", Category: cat, Slug: slug, IsPublished: published,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func TestListAndGetPublishedOnly(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	seedProfile(t, db, "a@example.com", "artisan-a", "artisanat", true)
	hidden := seedProfile(t, db, "b@example.com", "artisan-b", "artisanat", false)
	seedProfile(t, db, "c@example.com", "juriste-c", "juridique", true)

	q := pagination.Query{Page: 1, Limit: 20}

	all, meta, err := svc.List("", q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if meta.Total != 2 || len(all) != 2 {
		t.Errorf("list: total=%d len=%d, want 2", meta.Total, len(all))
	}

	crafts, _, err := svc.List("artisanat", q)
	if err != nil {
		t.Fatalf("list category: %v", err)
	}
	if len(crafts) != 1 {
		t.Errorf("category filter len = %d, want 1", len(crafts))
	}

	if _, err := svc.Get("artisan-a"); err != nil {
		t.Errorf("get published: %v", err)
	}
	if _, err := svc.Get(hidden.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("get unpublished err = %v", err)
	}
}

func TestUpdateOwnAndPublish(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	p := seedProfile(t, db, "a@example.com", "artisan-a", "artisanat", false)

	desc := "Atelier de menuiserie familial."
	out, err := svc.UpdateOwn(p.UserID, UpdateInput{Description: &desc})
	if err != nil {
		t.Fatalf("update own: %v", err)
	}
	if out.Description != desc {
		t.Errorf("description = %q", out.Description)
	}
	if out.IsPublished {
		t.Error("owner update must not publish")
	}

	pub, err := svc.SetPublished(p.ID, true)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !pub.IsPublished {
		t.Error("publish flag not set")
	}
	if _, err := svc.Get("artisan-a"); err != nil {
		t.Errorf("get after publish: %v", err)
	}

	if _, err := svc.UpdateOwn("missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing profile err = %v", err)
	}
}
