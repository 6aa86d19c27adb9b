package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/database"
	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/mail"
)

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	mailer := mail.NewSender(mail.Config{Enable: false})
	return NewService(db, mailer, "admin@example.com", zap.NewNop()), db
}

func TestRegisterMember(t *testing.T) {
	svc, db := testService(t)

	user, err := svc.Register(RegisterInput{
		Email: "Nora@Example.com", Password: "motdepasse",
		FirstName: "Nora", LastName: "Benali",
		City: "Lyon", PostalCode: "69003",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "nora@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}
	if user.Role != models.RoleMember || user.Status != models.StatusPending {
		t.Errorf("role/status = %s/%s", user.Role, user.Status)
	}
	if user.PasswordHash == "motdepasse" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if !user.NewsletterOptIn {
		t.Error("newsletter opt-in should default to true")
	}

	var profiles int64
	db.Model(&models.ProfessionalProfile{}).Count(&profiles)
	if profiles != 0 {
		t.Error("member registration created a directory profile")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := testService(t)

	in := RegisterInput{
		Email: "dup@example.com", Password: "motdepasse",
		FirstName: "A", LastName: "B",
	}
	if _, err := svc.Register(in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterProfessionalSlugDedup(t *testing.T) {
	svc, db := testService(t)

	for i, email := range []string{"p1@example.com", "p2@example.com"} {
		if _, err := svc.Register(RegisterInput{
			Email: email, Password: "motdepasse",
			FirstName: "Émile", LastName: "Durand",
			Role: models.RoleProfessional, Profession: "Boulanger", Category: "artisanat",
		}); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}

	var slugs []string
	db.Model(&models.ProfessionalProfile{}).Order("slug ASC").Pluck("slug", &slugs)
	if len(slugs) != 2 {
		t.Fatalf("profiles = %d, want 2", len(slugs))
	}
	if slugs[0] != "emile-durand" || slugs[1] != "emile-durand-2" {
		t.Errorf("slugs = %v, want [emile-durand emile-durand-2]", slugs)
	}

	var unpublished int64
	db.Model(&models.ProfessionalProfile{}).Where("is_published = ?", false).Count(&unpublished)
	if unpublished != 2 {
		t.Error("new profiles must start unpublished")
	}
}

func TestLoginFlows(t *testing.T) {
	svc, db := testService(t)

	if _, err := svc.Register(RegisterInput{
		Email: "login@example.com", Password: "motdepasse",
		FirstName: "A", LastName: "B",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Pending accounts cannot sign in.
	if _, _, err := svc.Login("login@example.com", "motdepasse", "127.0.0.1", "test"); !errors.Is(err, ErrAccountPending) {
		t.Errorf("pending login err = %v", err)
	}

	db.Model(&models.UserModel{}).Where("email = ?", "login@example.com").
		Update("status", models.StatusActive)

	token, user, err := svc.Login("login@example.com", "motdepasse", "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if user.LastLoginAt == nil {
		t.Error("lastLoginAt not stamped")
	}

	var sessions int64
	db.Model(&models.UserSession{}).Where("user_id = ?", user.ID).Count(&sessions)
	if sessions != 1 {
		t.Errorf("sessions = %d, want 1", sessions)
	}

	if _, _, err := svc.Login("login@example.com", "mauvais", "127.0.0.1", "test"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login("absent@example.com", "motdepasse", "127.0.0.1", "test"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}

	db.Model(&models.UserModel{}).Where("email = ?", "login@example.com").
		Update("status", models.StatusSuspended)
	if _, _, err := svc.Login("login@example.com", "motdepasse", "127.0.0.1", "test"); !errors.Is(err, ErrAccountSuspended) {
		t.Errorf("suspended login err = %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, db := testService(t)

	user, err := svc.Register(RegisterInput{
		Email: "gone@example.com", Password: "motdepasse",
		FirstName: "A", LastName: "B",
		Role: models.RoleProfessional, Profession: "Avocat", Category: "juridique",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.DeleteAccount(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	var users, profiles int64
	db.Model(&models.UserModel{}).Where("id = ?", user.ID).Count(&users)
	db.Model(&models.ProfessionalProfile{}).Where("user_id = ?", user.ID).Count(&profiles)
	if users != 0 || profiles != 0 {
		t.Errorf("leftovers: users=%d profiles=%d", users, profiles)
	}
}
