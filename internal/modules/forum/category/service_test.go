package category

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/models"
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

func TestCreateDerivesSlugAndDefaults(t *testing.T) {
	svc := NewService(testDB(t))

	cat, err := svc.Create(CreateInput{Name: "Entraide & Solidarité"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Slug != "entraide-solidarite" {
		t.Errorf("slug = %q", cat.Slug)
	}
	if cat.Color != "#16a34a" {
		t.Errorf("color = %q", cat.Color)
	}
	if !cat.IsActive {
		t.Error("new category should be active")
	}

	if _, err := svc.Create(CreateInput{Name: "Entraide & Solidarité"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v", err)
	}
}

func TestListCountsAndVisibility(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	visible, err := svc.Create(CreateInput{Name: "Visible"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	hidden, err := svc.Create(CreateInput{Name: "Cachée"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	off := false
	if _, err := svc.Update(hidden.ID, UpdateInput{IsActive: &off}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	user := &models.UserModel{Email: "u@example.com", PasswordHash: "x", FirstName: "A", LastName: "B", Status: models.StatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	threads := []models.ForumThreadModel{
		{Title: "Discussion une", Content: "c", Slug: "s1", CategoryID: visible.ID, AuthorID: user.ID, Status: models.ThreadActive},
		{Title: "Discussion deux", Content: "c", Slug: "s2", CategoryID: visible.ID, AuthorID: user.ID, Status: models.ThreadDeleted},
	}
	for i := range threads {
		if err := db.Create(&threads[i]).Error; err != nil {
			t.Fatalf("seed thread: %v", err)
		}
	}

	public, err := svc.List(false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(public) != 1 {
		t.Fatalf("public list len = %d, want 1", len(public))
	}
	if public[0].ThreadCount != 1 {
		t.Errorf("threadCount = %d, want 1 (deleted excluded)", public[0].ThreadCount)
	}

	all, err := svc.List(true)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin list len = %d, want 2", len(all))
	}
}

func TestDeleteGuards(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	cat, err := svc.Create(CreateInput{Name: "Occupée"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	user := &models.UserModel{Email: "u@example.com", PasswordHash: "x", FirstName: "A", LastName: "B", Status: models.StatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&models.ForumThreadModel{
		Title: "Discussion", Content: "c", Slug: "s", CategoryID: cat.ID, AuthorID: user.ID,
	}).Error; err != nil {
		t.Fatalf("seed thread: %v", err)
	}

	if err := svc.Delete(cat.ID); !errors.Is(err, ErrHasThreads) {
		t.Errorf("delete occupied err = %v", err)
	}

	empty, err := svc.Create(CreateInput{Name: "Vide"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Errorf("delete empty: %v", err)
	}
	if err := svc.Delete(empty.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}
