package thread

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/modules/forum/ban"
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

type fixture struct {
	db     *gorm.DB
	svc    *Service
	bans   *ban.Service
	user   *models.UserModel
	admin  *models.UserModel
	cat    *models.ForumCategoryModel
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)
	bans := ban.NewService(db)

	user := &models.UserModel{
		Email: "u@example.com", PasswordHash: "x",
		FirstName: "Nora", LastName: "B",
		Role: models.RoleMember, Status: models.StatusActive,
	}
	admin := &models.UserModel{
		Email: "a@example.com", PasswordHash: "x",
		FirstName: "Admin", LastName: "A",
		Role: models.RoleAdmin, Status: models.StatusActive,
	}
	cat := &models.ForumCategoryModel{
		Name: "Général", Slug: "general", IsActive: true, Color: "#16a34a",
	}
	for _, m := range []interface{}{user, admin, cat} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	return &fixture{db: db, svc: NewService(db, bans), bans: bans, user: user, admin: admin, cat: cat}
}

const validContent = "Un contenu suffisamment long pour passer la validation."

func (f *fixture) mustCreate(t *testing.T, title string) *models.ForumThreadModel {
	t.Helper()
	th, err := f.svc.Create(f.user.ID, f.cat.ID, title, validContent)
	if err != nil {
		t.Fatalf("create thread %q: %v", title, err)
	}
	return th
}

func TestCreateTitleBounds(t *testing.T) {
	f := setup(t)

	// 4 runes fails, 5 passes.
	_, err := f.svc.Create(f.user.ID, f.cat.ID, "abcd", validContent)
	var fields *FieldsError
	if !errors.As(err, &fields) {
		t.Fatalf("4-char title: err = %v, want FieldsError", err)
	}
	if _, ok := fields.Details["title"]; !ok {
		t.Errorf("details missing title: %v", fields.Details)
	}
	if _, ok := fields.Details["content"]; ok {
		t.Errorf("valid content flagged: %v", fields.Details)
	}

	if _, err := f.svc.Create(f.user.ID, f.cat.ID, "abcde", validContent); err != nil {
		t.Fatalf("5-char title rejected: %v", err)
	}
}

func TestCreateBoundsApplyAfterSanitize(t *testing.T) {
	f := setup(t)

	// Markup is stripped before measuring, so tags cannot pad a short title.
	_, err := f.svc.Create(f.user.ID, f.cat.ID, "<b><i>ab</i></b>", validContent)
	var fields *FieldsError
	if !errors.As(err, &fields) {
		t.Fatalf("tag-padded title: err = %v, want FieldsError", err)
	}
}

func TestCreateBannedAuthor(t *testing.T) {
	f := setup(t)
	if _, err := f.bans.Upsert(ban.UpsertInput{
		UserID: f.user.ID, Reason: "spam sur le forum", DurationDays: 7, AdminID: f.admin.ID,
	}); err != nil {
		t.Fatalf("ban: %v", err)
	}

	_, err := f.svc.Create(f.user.ID, f.cat.ID, "Titre correct", validContent)
	var banned *BannedError
	if !errors.As(err, &banned) {
		t.Fatalf("err = %v, want BannedError", err)
	}
	if banned.Reason != "spam sur le forum" {
		t.Errorf("reason = %q", banned.Reason)
	}

	// Lifting the ban restores posting.
	if err := f.bans.Remove(f.user.ID); err != nil {
		t.Fatalf("remove ban: %v", err)
	}
	if _, err := f.svc.Create(f.user.ID, f.cat.ID, "Titre correct", validContent); err != nil {
		t.Fatalf("create after unban: %v", err)
	}
}

func TestCreateCategoryChecks(t *testing.T) {
	f := setup(t)

	if _, err := f.svc.Create(f.user.ID, "missing", "Titre correct", validContent); err != ErrCategoryNotFound {
		t.Errorf("missing category err = %v", err)
	}

	f.db.Model(f.cat).Update("is_active", false)
	if _, err := f.svc.Create(f.user.ID, f.cat.ID, "Titre correct", validContent); err != ErrCategoryInactive {
		t.Errorf("inactive category err = %v", err)
	}
}

func TestGetBumpsViewCount(t *testing.T) {
	f := setup(t)
	th := f.mustCreate(t, "Discussion vue")

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Get(th.ID); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}

	var got models.ForumThreadModel
	f.db.First(&got, "id = ?", th.ID)
	if got.ViewCount != 3 {
		t.Errorf("viewCount = %d, want 3", got.ViewCount)
	}
}

func TestGetBySlugAndDeleted(t *testing.T) {
	f := setup(t)
	th := f.mustCreate(t, "Discussion par slug")

	if _, err := f.svc.Get(th.Slug); err != nil {
		t.Fatalf("get by slug: %v", err)
	}

	if _, err := f.svc.Moderate(th.ID, ActionDelete, f.admin.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(th.ID); err != ErrNotFound {
		t.Errorf("deleted thread get err = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.Get(th.Slug); err != ErrNotFound {
		t.Errorf("deleted thread get by slug err = %v, want ErrNotFound", err)
	}

	// The row is retained.
	var count int64
	f.db.Model(&models.ForumThreadModel{}).Where("id = ?", th.ID).Count(&count)
	if count != 1 {
		t.Error("deleted thread row was removed")
	}
}

func TestListOrderingAndExclusion(t *testing.T) {
	f := setup(t)
	older := f.mustCreate(t, "Discussion ancienne")
	newer := f.mustCreate(t, "Discussion récente")
	gone := f.mustCreate(t, "Discussion supprimée")

	// Spread activity stamps.
	f.db.Model(older).Update("last_reply_at", time.Now().Add(-2*time.Hour))
	f.db.Model(newer).Update("last_reply_at", time.Now().Add(-time.Hour))

	if _, err := f.svc.Moderate(gone.ID, ActionDelete, f.admin.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Moderate(older.ID, ActionPin, f.admin.ID); err != nil {
		t.Fatalf("pin: %v", err)
	}

	threads, meta, err := f.svc.List("", pagination.Query{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if meta.Total != 2 {
		t.Errorf("total = %d, want 2", meta.Total)
	}
	if len(threads) != 2 {
		t.Fatalf("len = %d, want 2", len(threads))
	}
	// Pinned first despite older activity.
	if threads[0].ID != older.ID {
		t.Errorf("first = %s, want pinned %s", threads[0].ID, older.ID)
	}
	for _, th := range threads {
		if th.ID == gone.ID {
			t.Error("deleted thread present in listing")
		}
	}
}

func TestModerateToggles(t *testing.T) {
	f := setup(t)
	th := f.mustCreate(t, "Discussion modérée")

	out, err := f.svc.Moderate(th.ID, ActionPin, f.admin.ID)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if !out.Pinned {
		t.Error("pin did not set pinned")
	}
	out, err = f.svc.Moderate(th.ID, ActionPin, f.admin.ID)
	if err != nil {
		t.Fatalf("unpin: %v", err)
	}
	if out.Pinned {
		t.Error("second pin did not toggle off")
	}

	out, err = f.svc.Moderate(th.ID, ActionLock, f.admin.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if out.Status != models.ThreadLocked {
		t.Errorf("status = %s, want locked", out.Status)
	}
	out, err = f.svc.Moderate(th.ID, ActionLock, f.admin.ID)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if out.Status != models.ThreadActive {
		t.Errorf("status = %s, want active", out.Status)
	}

	if _, err := f.svc.Moderate(th.ID, "archive", f.admin.ID); err != ErrUnknownAction {
		t.Errorf("unknown action err = %v", err)
	}

	if _, err := f.svc.Moderate("missing", ActionPin, f.admin.ID); err != ErrNotFound {
		t.Errorf("missing thread err = %v", err)
	}
}
