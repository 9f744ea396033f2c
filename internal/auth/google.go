// Package auth implements the Google sign-in flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	sharedauth "elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/server/respond"
	"elevate-backend/internal/shared/telemetry"
	"elevate-backend/internal/users"
)

const (
	providerGoogle  = "google"
	defaultStateTTL = 5 * time.Minute
)

// UserUpserter records a signed-in account and returns the stored user.
type UserUpserter interface {
	UpsertFromAuth(ctx context.Context, user users.User) (users.User, error)
}

// TokenSigner issues the session token handed to the web client.
type TokenSigner interface {
	Sign(id sharedauth.Identity) (string, error)
}

// GoogleService handles Google OAuth flows.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	apiEndpoint string
	stateTTL    time.Duration
	states      *stateStore
	users       UserUpserter
	signer      TokenSigner
}

// NewGoogleService builds a GoogleService. uiRedirect receives ?token=<jwt> after sign-in.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, users UserUpserter, signer TokenSigner) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{googleoauth.UserinfoEmailScope, googleoauth.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		uiRedirect: uiRedirect,
		stateTTL:   defaultStateTTL,
		states:     newStateStore(),
		users:      users,
		signer:     signer,
	}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusServiceUnavailable, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.states.put(state, time.Now().Add(s.stateTTL))
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !s.states.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	info, err := s.fetchProfile(ctx, token)
	if err != nil {
		telemetry.Warn("auth.userinfo_failed", map[string]any{"err": err})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if info.Email == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "Google account has no email", nil)
		return
	}

	user, err := s.users.UpsertFromAuth(ctx, users.User{
		Name:       info.Name,
		Email:      info.Email,
		PictureURL: info.Picture,
		Provider:   providerGoogle,
		ProviderID: info.Subject,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record user", nil)
		return
	}

	jwt, err := s.signer.Sign(sharedauth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.PictureURL,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	telemetry.Info("auth.signed_in", map[string]any{"user_id": user.ID, "provider": providerGoogle})
	c.Redirect(http.StatusFound, redirectURL)
}

type googleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// fetchProfile reads the signed-in account through the oauth2/v2 userinfo API.
func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	opts := []option.ClientOption{option.WithHTTPClient(s.oauthConfig.Client(ctx, token))}
	if s.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.apiEndpoint))
	}
	api, err := googleoauth.NewService(ctx, opts...)
	if err != nil {
		return googleProfile{}, fmt.Errorf("userinfo client: %w", err)
	}
	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return googleProfile{}, fmt.Errorf("userinfo: %w", err)
	}
	return googleProfile{
		Subject: info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

type stateStore struct {
	mu    sync.Mutex
	items map[string]time.Time
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]time.Time)}
}

// put also drops expired states so abandoned logins do not accumulate.
func (s *stateStore) put(state string, exp time.Time) {
	now := time.Now()
	s.mu.Lock()
	for k, v := range s.items {
		if now.After(v) {
			delete(s.items, k)
		}
	}
	s.items[state] = exp
	s.mu.Unlock()
}

func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	return ok && !time.Now().After(exp)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
