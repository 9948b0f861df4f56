package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthrecord/internal/apperrors"
	"healthrecord/internal/auth"
	"healthrecord/internal/models"
	"healthrecord/internal/repository"
)

type SignupInput struct {
	Firstname string `json:"firstname" validate:"required,min=3,max=12" example:"John"`
	Lastname  string `json:"lastname" validate:"required,min=3,max=12" example:"Smith"`
	Email     string `json:"email" validate:"required,email" example:"john@example.com"`
	Password  string `json:"password" validate:"required,strongpassword" example:"Str0ng!Pass"`
	Gender    string `json:"gender" validate:"omitempty,oneof=Male Female Other" example:"Male"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"Str0ng!Pass"`
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	validate *validator.Validate
	hashCost int
	log      *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, hashCost int, log *zap.Logger) *AuthService {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("strongpassword", strongPassword)

	return &AuthService{
		users:    users,
		tokens:   tokens,
		validate: v,
		hashCost: hashCost,
		log:      log.Named("auth"),
	}
}

// strongPassword requires at least 8 characters with an upper and lower case
// letter, a digit and a symbol.
func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request data"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Firstname", "Lastname":
		if fe.Tag() == "required" {
			return "First name and last name are required"
		}
		return "First name and last name must be between 3 and 12 characters"
	case "Email":
		return "Invalid email format"
	case "Password":
		return "Password must be strong (min 8 chars, uppercase, lowercase, number, symbol)"
	case "Gender":
		return "Gender must be one of Male, Female or Other"
	default:
		return "Invalid request data"
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Email = repository.NormalizeEmail(in.Email)

	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.Validation(validationMessage(err))
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperrors.Conflict("Email already registered")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Persistence("Error during signup", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, apperrors.Internal("Error during signup", err)
	}

	user := &models.User{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
		Password:  string(hash),
		Gender:    in.Gender,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.Persistence("Error during signup", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Internal("Error during signup", err)
	}

	s.log.Info("user signed up", zap.Uint("user_id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, repository.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Auth("Invalid credentials")
		}
		return nil, apperrors.Persistence("Error during login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Auth("Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Internal("Error during login", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindAuth, "Invalid or expired token")
	}
	return s.CurrentUser(ctx, claims.UserID)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Auth("User not found")
		}
		return nil, apperrors.Persistence("Error fetching user", err)
	}
	return user, nil
}

func (s *AuthService) AllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Persistence("Error fetching all users", err)
	}
	return users, nil
}
