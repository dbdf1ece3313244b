package service

import (
	"log"
	"strings"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/repository"
	"github.com/Akhileshkolipakula/soda-business-manager/pkg/jwt"

	"github.com/google/uuid"
)

const minPasswordLength = 4

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Register(username, password string) (*model.User, error)
	Logout(userID uuid.UUID) error
	ValidateToken(tokenString string) (*model.UserResponse, error)
	Bootstrap() error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Rotating the token version on every login keeps exactly one session
	// valid per user and lets logout invalidate outstanding tokens.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role, newTokenVersion)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Register creates a staff-role account. Admin accounts come from the
// bootstrap or from promoting a user directly in the database.
func (s *authService) Register(username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrValidation
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if existing, _ := s.userRepo.FindByUsername(username); existing != nil {
		return nil, ErrDuplicateUsername
	}

	user := &model.User{
		Username: username,
		Role:     model.RoleStaff,
	}
	user.CreatedBy = username
	user.UpdatedBy = username
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, mapDuplicate(err, ErrDuplicateUsername)
	}
	return user, nil
}

// Logout invalidates the user's current session token.
func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidToken
	}

	resp := user.ToResponse()
	return &resp, nil
}

// Bootstrap creates the default admin account when the user table is
// empty. The default password must be changed in any real deployment.
func (s *authService) Bootstrap() error {
	count, err := s.userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &model.User{
		Username: "admin",
		Role:     model.RoleAdmin,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}

	if err := s.userRepo.Create(admin); err != nil {
		return err
	}
	log.Println("Default admin created (admin/admin123) - change this password immediately")
	return nil
}
