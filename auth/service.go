package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/xy-planning-network/roadtrip"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	defaultStateTTL = 10 * time.Minute
	stateSubject    = "oauth-state"
)

var _ AuthService = (*Service)(nil)

// Config holds what a Service needs to act as a Google OAuth client.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// JWTKey signs the state parameter of a handshake.
	JWTKey string

	// StateTTL bounds how long a user may take to complete a handshake.
	// It defaults to 10 minutes.
	StateTTL time.Duration

	// Endpoint overrides google.Endpoint.
	Endpoint oauth2.Endpoint

	// APIEndpoint overrides where the userinfo API is reached.
	APIEndpoint string
}

// Service is an implementation of the AuthService interface defined in this package
// that authenticates users with Google.
type Service struct {
	apiEndpoint string
	config      *oauth2.Config
	key         []byte
	now         func() time.Time
	parser      *jwt.Parser
	ttl         time.Duration
}

// NewService constructs a *Service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.JWTKey == "" || cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf(`%w: oauth config cannot be ""`, roadtrip.ErrBadConfig)
	}

	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = google.Endpoint
	}

	if cfg.StateTTL <= 0 {
		cfg.StateTTL = defaultStateTTL
	}

	return &Service{
		apiEndpoint: cfg.APIEndpoint,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{goauth2.UserinfoProfileScope, goauth2.UserinfoEmailScope},
			Endpoint:     cfg.Endpoint,
		},
		key:    []byte(cfg.JWTKey),
		now:    time.Now,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
		ttl:    cfg.StateTTL,
	}, nil
}

// LoginURL implements AuthService.
func (s *Service) LoginURL() (string, error) {
	state, err := s.NewState()
	if err != nil {
		return "", err
	}

	return s.config.AuthCodeURL(state), nil
}

// Authenticate implements AuthService.
func (s *Service) Authenticate(ctx context.Context, state, code string) (roadtrip.User, error) {
	if err := s.VerifyState(state); err != nil {
		return roadtrip.User{}, err
	}

	if code == "" {
		return roadtrip.User{}, ErrNoCode
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return roadtrip.User{}, fmt.Errorf("%w: exchanging code: %s", ErrProvider, err)
	}

	info, err := s.FetchUser(ctx, token)
	if err != nil {
		return roadtrip.User{}, err
	}

	u := roadtrip.User{ID: info.Id, DisplayName: info.Name, Email: info.Email}
	if u.DisplayName == "" {
		u.DisplayName = info.GivenName
	}

	if !u.Exists() {
		return roadtrip.User{}, fmt.Errorf("%w: userinfo has no id", ErrProvider)
	}

	return u, nil
}

// NewState signs a JWT to pass as the state parameter of a handshake.
func (s *Service) NewState() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   stateSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: signing state: %s", roadtrip.ErrUnexpected, err)
	}

	return state, nil
}

// VerifyState asserts state is a JWT NewState signed that has not yet expired.
func (s *Service) VerifyState(state string) error {
	if state == "" {
		return fmt.Errorf("%w: missing", ErrBadState)
	}

	claims := new(jwt.RegisteredClaims)
	_, err := s.parser.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadState, err)
	}

	if claims.Subject != stateSubject {
		return fmt.Errorf("%w: wrong subject %q", ErrBadState, claims.Subject)
	}

	return nil
}

// FetchUser retrieves the profile of the user token belongs to.
func (s *Service) FetchUser(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	opts := []option.ClientOption{option.WithTokenSource(s.config.TokenSource(ctx, token))}
	if s.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.apiEndpoint))
	}

	service, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProvider, err)
	}

	user, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: fetching userinfo: %s", ErrProvider, err)
	}

	return user, nil
}
