package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
	"virtual-tryon-backend/internal/config"
)

// Client wraps the Supabase client used for identity operations. Token
// validation normally happens locally against the JWT secret; the remote
// GetUser path exists for deployments that only hold the anon key.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

// Session is the subset of the Supabase auth session this backend relays to
// clients.
type Session struct {
	AccessToken string
	UserID      uuid.UUID
	Email       string
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// SignUp registers a new user with the Supabase auth service.
func (c *Client) SignUp(email, password string) error {
	_, err := c.Supabase.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to sign up: %w", err)
	}

	return nil
}

// SignIn exchanges email/password credentials for a session.
func (c *Client) SignIn(email, password string) (*Session, error) {
	session, err := c.Supabase.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	return &Session{
		AccessToken: session.AccessToken,
		UserID:      session.User.ID,
		Email:       session.User.Email,
	}, nil
}

// VerifyToken asks the Supabase auth service who the bearer of the token is.
func (c *Client) VerifyToken(token string) (uuid.UUID, error) {
	user, err := c.Supabase.Auth.WithToken(token).GetUser()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to verify token: %w", err)
	}

	return user.ID, nil
}
