package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"google.golang.org/api/option"
)

// FirebaseProvider implements Provider on Firebase Authentication.
type FirebaseProvider struct {
	client *auth.Client
}

// NewFirebaseProvider builds the auth client. credentialsFile may be empty to use
// application default credentials.
func NewFirebaseProvider(ctx context.Context, projectID, credentialsFile string) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password string) (Account, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return Account{}, classify(err)
	}
	return Account{UID: rec.UID, Email: rec.Email}, nil
}

func (p *FirebaseProvider) GetUser(ctx context.Context, uid string) (Account, error) {
	rec, err := p.client.GetUser(ctx, uid)
	if err != nil {
		return Account{}, classify(err)
	}
	return Account{UID: rec.UID, Email: rec.Email}, nil
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return &Error{Kind: KindEmailExists, Msg: err.Error(), Err: err}
	case auth.IsUserNotFound(err):
		return &Error{Kind: KindUserNotFound, Msg: err.Error(), Err: err}
	case errorutils.IsInvalidArgument(err):
		return &Error{Kind: KindInvalidInput, Msg: err.Error(), Err: err}
	default:
		return &Error{Kind: KindUnavailable, Msg: err.Error(), Err: err}
	}
}
