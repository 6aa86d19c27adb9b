package article

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/pkg/pagination"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func TestPublishStampsDate(t *testing.T) {
	svc := testService(t)

	draft, err := svc.Create(Input{Title: "Brouillon", Content: "Contenu du brouillon.", AuthorName: "Rédaction"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if draft.PublishedAt != nil {
		t.Error("draft has publishedAt")
	}

	pub, err := svc.Update(draft.ID, Input{
		Title: "Publié", Content: "Contenu publié.", AuthorName: "Rédaction", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if pub.PublishedAt == nil {
		t.Fatal("publishedAt not stamped")
	}

	unpub, err := svc.Update(draft.ID, Input{
		Title: "Retiré", Content: "Contenu retiré.", AuthorName: "Rédaction", IsPublished: false,
	})
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if unpub.PublishedAt != nil {
		t.Error("publishedAt not cleared on unpublish")
	}
}

func TestListPublishedOnly(t *testing.T) {
	svc := testService(t)

	if _, err := svc.Create(Input{Title: "Visible", Content: "Contenu visible.", AuthorName: "R", IsPublished: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(Input{Title: "Brouillon", Content: "Contenu caché.", AuthorName: "R"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	q := pagination.Query{Page: 1, Limit: 20}
	pub, meta, err := svc.ListPublished(q)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if meta.Total != 1 || len(pub) != 1 || pub[0].Title != "Visible" {
		t.Errorf("published list wrong: total=%d %v", meta.Total, pub)
	}

	all, meta, err := svc.ListAll(q)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if meta.Total != 2 || len(all) != 2 {
		t.Errorf("admin list wrong: total=%d len=%d", meta.Total, len(all))
	}
}

func TestDelete(t *testing.T) {
	svc := testService(t)
	a, err := svc.Create(Input{Title: "Jetable", Content: "Contenu jetable.", AuthorName: "R"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}
