package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asbhive/directory/api/internal/auth"
	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/repository"
)

const (
	minPasswordLength = 6
	pendingStatus     = "Pending Verification"
)

// EmailStatus tells the sign-in page which flow applies to an email.
type EmailStatus struct {
	CompanyExists bool   `json:"company_exists"`
	CompanyName   string `json:"company_name,omitempty"`
	HasAccount    bool   `json:"has_account"`
}

// AuthService coordinates credential validation, registration and token issuance.
type AuthService struct {
	users       repository.UsersRepository
	companies   repository.CompaniesRepository
	jwt         *auth.JWTManager
	revocations *auth.Revocations
	log         zerolog.Logger
	now         func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, companies repository.CompaniesRepository, jwtManager *auth.JWTManager, revocations *auth.Revocations, log zerolog.Logger) *AuthService {
	if revocations == nil {
		revocations = auth.NewRevocations()
	}
	return &AuthService{
		users:       users,
		companies:   companies,
		jwt:         jwtManager,
		revocations: revocations,
		log:         log,
		now:         time.Now,
	}
}

// CheckEmail reports whether the email belongs to a listed company and whether it already has an account.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (EmailStatus, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return EmailStatus{}, err
	}

	var status EmailStatus
	company, err := s.companies.FindByEmail(ctx, email)
	switch {
	case err == nil:
		status.CompanyExists = true
		status.CompanyName = company.Name
	case !errors.Is(err, repository.ErrCompanyNotFound):
		return EmailStatus{}, err
	}

	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		status.HasAccount = true
	case !errors.Is(err, repository.ErrUserNotFound):
		return EmailStatus{}, err
	}
	return status, nil
}

// Register creates a new company listing together with the account that manages it.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := checkPasswords(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		return nil, ValidationError{Message: "company name is required"}
	}

	status, err := s.CheckEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if status.HasAccount {
		return nil, ErrEmailAlreadyExists
	}
	if status.CompanyExists {
		return nil, ErrCompanyListed
	}

	company := &entity.Company{
		Name:        name,
		Email:       &email,
		Sector:      strings.TrimSpace(req.Sector),
		Description: strings.TrimSpace(req.Description),
		Status:      pendingStatus,
	}
	if req.WebsiteURL != nil {
		website, err := NewProfileValidator(defaultPhoneRegion).CleanWebsite(*req.WebsiteURL)
		if err != nil {
			return nil, err
		}
		company.WebsiteURL = normalizeString(website)
	}
	if req.ContactInfo != nil {
		company.ContactInfo = normalizeString(*req.ContactInfo)
	}
	if err := s.companies.Insert(ctx, company); err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrCompanyListed
		}
		return nil, err
	}

	user, err := s.createUser(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("company_id", company.ID.String()).Str("user_id", user.ID.String()).Msg("company registered")
	return s.issue(user)
}

// ClaimAccount creates the account for a company that is already listed but has never signed in.
func (s *AuthService) ClaimAccount(ctx context.Context, req dto.ClaimRequest) (*dto.LoginResponse, error) {
	if err := checkPasswords(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}
	status, err := s.CheckEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if !status.CompanyExists {
		return nil, ErrCompanyNotListed
	}
	if status.HasAccount {
		return nil, ErrAccountExists
	}

	user, err := s.createUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("company account claimed")
	return s.issue(user)
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ValidationError{Message: "email and password must not be empty"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Logout revokes the session's token so it cannot be presented again.
func (s *AuthService) Logout(session *auth.Session) error {
	if !session.Active(s.now()) {
		return ErrSessionInactive
	}
	s.revocations.Revoke(session.TokenID, session.ExpiresAt)
	session.State = auth.SessionLoggedOut
	return nil
}

// Profile returns the company record managed by the session's account.
func (s *AuthService) Profile(ctx context.Context, session *auth.Session) (*entity.Company, error) {
	if !session.Active(s.now()) {
		return nil, ErrSessionInactive
	}
	return s.companies.FindByEmail(ctx, session.Email)
}

func (s *AuthService) createUser(ctx context.Context, email, password string) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, email, string(hashed), auth.RoleCompany)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, claims, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		Role:        user.Role,
	}, nil
}

func checkPasswords(password, confirm string) error {
	if password != confirm {
		return ValidationError{Message: "passwords do not match"}
	}
	if len(password) < minPasswordLength {
		return ValidationError{Message: "password must be at least 6 characters"}
	}
	return nil
}
