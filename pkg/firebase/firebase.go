package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when no service account file is configured.
var ErrNoCredentials = errors.New("firebase: credentials path is empty")

// NewAuthClient builds the ID token verifier used by Firebase login from a
// service account file.
func NewAuthClient(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, ErrNoCredentials
	}
	info, err := os.Stat(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("firebase: reading credentials: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("firebase: credentials path %s is a directory", credentialsPath)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("firebase: creating app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: creating auth client: %w", err)
	}
	return client, nil
}
