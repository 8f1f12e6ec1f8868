package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
	bootstrap    singleflight.Group
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	user := newProfile(uid, input.Email, input.Name, "")
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.SyncSession(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// SyncSession resolves the domain profile for a verified session. On a
// first sign-in (email or OAuth) no profile exists yet, so one is
// synthesized from the provider's claims. Bootstrap runs at most once
// per uid at a time; concurrent session changes share the same result.
func (uc *AuthUseCase) SyncSession(ctx context.Context, uid string) (*entity.User, error) {
	result, err, _ := uc.bootstrap.Do(uid, func() (interface{}, error) {
		user, err := uc.userRepo.GetByID(ctx, uid)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		profile, err := uc.firebaseAuth.GetProfile(ctx, uid)
		if err != nil {
			return nil, errors.Internal("Failed to load provider profile", err)
		}

		user = newProfile(uid, profile.Email, profile.DisplayName, profile.PhotoURL)
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}

		return uc.userRepo.GetByID(ctx, uid)
	})

	if err != nil {
		return nil, err
	}
	return result.(*entity.User), nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.firebaseAuth.RevokeTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke session", err)
	}
	return nil
}

// newProfile builds a first-login profile with every host capability at
// its empty default.
func newProfile(uid, email, name, photoURL string) *entity.User {
	displayName := name
	if parts := strings.Fields(name); len(parts) > 0 {
		displayName = parts[0]
	}

	now := time.Now()
	return &entity.User{
		ID:                        uid,
		Email:                     email,
		Name:                      name,
		DisplayName:               displayName,
		ProfilePicture:            photoURL,
		PhLevels:                  []float64{},
		Availability:              entity.DefaultAvailability(),
		IsAcceptingRequests:       true,
		DistributorStatus:         entity.DistributorNone,
		DistributorProofDocuments: []entity.ProofDocument{},
		Followers:                 []string{},
		Following:                 []string{},
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
}
