package usecase

import (
	"context"
	"io"
)

// ProviderProfile is the identity provider's view of a user, used to
// bootstrap a domain profile on first sign-in.
type ProviderProfile struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GetProfile(ctx context.Context, uid string) (*ProviderProfile, error)
	SignInWithEmailPassword(email, password string) (string, error)
	RevokeTokens(ctx context.Context, uid string) error
}

type StorageClient interface {
	UploadProfilePicture(ctx context.Context, userID string, file io.Reader, contentType string) (string, error)
	DeleteProfilePicture(ctx context.Context, userID string) error
	UploadProofDocument(ctx context.Context, userID, docID, fileName string, file io.Reader, contentType string) (string, error)
	DeleteProofDocument(ctx context.Context, userID, docID string) error
}
