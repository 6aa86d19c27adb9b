// Package auth implements registration, login and account management.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/mail"
	"github.com/alwasl/core/internal/pkg/session"
	"github.com/alwasl/core/internal/pkg/text"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountPending     = errors.New("account pending review")
	ErrAccountSuspended   = errors.New("account suspended")
)

// dummyHash keeps bcrypt cost constant when the email does not exist.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("alwasl-dummy"), bcrypt.DefaultCost)

// Service owns account lifecycle.
type Service struct {
	db         *gorm.DB
	mailer     *mail.Sender
	adminEmail string
	log        *zap.Logger
}

func NewService(db *gorm.DB, mailer *mail.Sender, adminEmail string, log *zap.Logger) *Service {
	return &Service{db: db, mailer: mailer, adminEmail: adminEmail, log: log}
}

// RegisterInput carries a validated signup request.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Role       models.UserRole
	Address    string
	City       string
	PostalCode string

	// Professional fields.
	Profession        string
	Category          string
	CompanyName       string
	Description       string
	ProfessionalPhone string
	ProfessionalEmail string
	Website           string
}

// Register creates a pending account. Professionals additionally get an
// unpublished directory profile with a unique slug. Confirmation and admin
// notification mails go out in the background.
func (s *Service) Register(in RegisterInput) (*models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var exists int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.RoleMember
	if in.Role == models.RoleProfessional {
		role = models.RoleProfessional
	}

	user := models.UserModel{
		Email:           email,
		PasswordHash:    string(hash),
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Phone:           strings.TrimSpace(in.Phone),
		Role:            role,
		Status:          models.StatusPending,
		NewsletterOptIn: true,
	}
	if role == models.RoleMember {
		user.Address = in.Address
		user.City = in.City
		user.PostalCode = in.PostalCode
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role != models.RoleProfessional {
			return nil
		}
		slug, err := s.uniqueProfileSlug(tx, user.FirstName, user.LastName)
		if err != nil {
			return err
		}
		profile := models.ProfessionalProfile{
			UserID:            user.ID,
			Profession:        in.Profession,
			Category:          in.Category,
			CompanyName:       in.CompanyName,
			Description:       in.Description,
			Address:           in.Address,
			City:              in.City,
			PostalCode:        in.PostalCode,
			ProfessionalPhone: in.ProfessionalPhone,
			ProfessionalEmail: in.ProfessionalEmail,
			Website:           in.Website,
			Slug:              slug,
			IsPublished:       false,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	go s.sendRegistrationMails(user, in.Profession)
	return &user, nil
}

func (s *Service) uniqueProfileSlug(tx *gorm.DB, first, last string) (string, error) {
	base := text.Slugify(first+" "+last, 60)
	if base == "" {
		base = "profil"
	}
	slug := base
	for i := 2; ; i++ {
		var n int64
		if err := tx.Model(&models.ProfessionalProfile{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) sendRegistrationMails(user models.UserModel, profession string) {
	if !s.mailer.Enabled() {
		return
	}
	if err := s.mailer.SendRegistrationPending(user.Email, mail.RegistrationPendingData{
		FirstName: user.FirstName,
		Role:      roleLabel(user.Role),
	}); err != nil {
		s.log.Warn("registration mail failed", zap.String("to", user.Email), zap.Error(err))
	}
	if s.adminEmail == "" {
		return
	}
	if err := s.mailer.SendAdminRegistrationNotice(s.adminEmail, mail.AdminRegistrationData{
		Name:       user.Name(),
		Email:      user.Email,
		Role:       roleLabel(user.Role),
		Profession: profession,
	}); err != nil {
		s.log.Warn("admin notification mail failed", zap.Error(err))
	}
}

func roleLabel(r models.UserRole) string {
	switch r {
	case models.RoleProfessional:
		return "professionnel"
	case models.RoleAdmin:
		return "administrateur"
	default:
		return "membre"
	}
}

// Login checks credentials and opens a session. Password comparison runs even
// when the email is unknown so the two failures are indistinguishable.
func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.UserModel
	err := s.db.Preload("Profile").First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	switch user.Status {
	case models.StatusPending:
		return "", nil, ErrAccountPending
	case models.StatusSuspended:
		return "", nil, ErrAccountSuspended
	}

	token, _, err := session.Issue(s.db, user.ID, ip, ua, session.DefaultTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_at": &now,
		"last_login_ip": ip,
	}).Error; err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout revokes the session carried by the caller's token. Tokens without a
// session binding have nothing to revoke.
func (s *Service) Logout(userID, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	err := session.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// Me loads the caller with their directory profile.
func (s *Service) Me(userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAccount removes the caller's account, profile, sessions and forum
// ban row. Forum posts stay, attributed to the removed author ID.
func (s *Service) DeleteAccount(userID string) error {
	if err := session.RevokeAll(s.db, userID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ProfessionalProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ForumBanModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserModel{}, "id = ?", userID).Error
	})
}
