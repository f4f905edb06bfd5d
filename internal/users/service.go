package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Samyakjain08/AeroJobs/internal/shared/auth"
	"github.com/Samyakjain08/AeroJobs/internal/shared/storage/object"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrRoleMismatch       = errors.New("account does not exist with this role")
)

// Service implements account and profile operations.
type Service struct {
	Repo        Repo
	Store       object.ObjectStore
	FileBaseURL string
}

// RegisterInput captures a signup request.
type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))

	if input.FullName == "" || input.Email == "" || input.PhoneNumber == "" || input.Password == "" || input.Role == "" {
		return User{}, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if input.Role != RoleStudent && input.Role != RoleRecruiter {
		return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		FullName:     input.FullName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hash),
		Role:         input.Role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login checks credentials and role, returning the user and a signed session token.
func (s *Service) Login(ctx context.Context, email, password, role string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.ToLower(strings.TrimSpace(role))
	if email == "" || password == "" || role == "" {
		return User{}, "", fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	if role != user.Role {
		return User{}, "", ErrRoleMismatch
	}

	token, err := auth.SignJWT(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.Role,
	})
	if err != nil {
		return User{}, "", fmt.Errorf("sign session token: %w", err)
	}
	return user, token, nil
}

// ProfileUpdate carries the optional fields of a profile update request.
// Resume, when non-nil, is stored and its URL written to the profile.
type ProfileUpdate struct {
	FullName       string
	Email          string
	PhoneNumber    string
	Bio            string
	Skills         string
	ResumeFileName string
	Resume         io.Reader
}

// UpdateProfile applies the provided fields to the user's profile.
// Empty fields are left untouched.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if upd.Resume != nil {
		if !strings.HasSuffix(strings.ToLower(upd.ResumeFileName), ".pdf") {
			return User{}, fmt.Errorf("%w: only PDF files are allowed", ErrInvalidInput)
		}
		storageKey, _, _, err := s.Store.Save(ctx, userID, upd.ResumeFileName, upd.Resume)
		if err != nil {
			return User{}, fmt.Errorf("store resume: %w", err)
		}
		user.Profile.Resume = s.fileURL(storageKey)
		user.Profile.ResumeOriginalName = upd.ResumeFileName
	}

	if v := strings.TrimSpace(upd.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.ToLower(strings.TrimSpace(upd.Email)); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(upd.PhoneNumber); v != "" {
		user.PhoneNumber = v
	}
	if v := strings.TrimSpace(upd.Bio); v != "" {
		user.Profile.Bio = v
	}
	if skills := splitSkills(upd.Skills); len(skills) > 0 {
		user.Profile.Skills = skills
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) fileURL(storageKey string) string {
	base := strings.TrimRight(s.FileBaseURL, "/")
	return base + "/api/v1/files/" + storageKey
}

func splitSkills(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
