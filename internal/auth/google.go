package auth

import (
	"context"
	"encoding/json"
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

	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	defaultStateTTL    = 5 * time.Minute
	accountIDPrefix    = "google:"
)

var (
	errProfile = errors.New("google profile unavailable")
	errAccount = errors.New("account could not be recorded")
)

// AccountStore records identities returned by the provider.
type AccountStore interface {
	UpsertFromAuth(ctx context.Context, user users.User) (users.User, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(id sharedauth.Identity) (string, error)
}

// GoogleConfig carries the OAuth client and where the UI expects the token.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	UIRedirect   string
}

// GoogleService signs users in with Google and redirects the UI with a
// session token in the query string.
type GoogleService struct {
	oauth       *oauth2.Config
	uiRedirect  string
	userInfoURL string
	states      *pendingStates
	accounts    AccountStore
	tokens      TokenIssuer
}

func NewGoogleService(cfg GoogleConfig, accounts AccountStore, tokens TokenIssuer) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:  cfg.UIRedirect,
		userInfoURL: defaultUserInfoURL,
		states:      newPendingStates(defaultStateTTL),
		accounts:    accounts,
		tokens:      tokens,
	}
}

// Configured reports whether client credentials, callback and UI redirect are set.
func (s *GoogleService) Configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != "" && s.oauth.RedirectURL != "" && s.uiRedirect != ""
}

func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.Configured() {
		respond.Error(c, http.StatusServiceUnavailable, "auth_not_configured", "Google sign-in is not configured", nil)
		return
	}
	state := s.states.issue(time.Now())
	c.Redirect(http.StatusFound, s.oauth.AuthCodeURL(state))
}

func (s *GoogleService) callback(c *gin.Context) {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.BadRequest(c, "missing state or code", nil)
		return
	}
	if !s.states.consume(state, time.Now()) {
		respond.BadRequest(c, "invalid or expired state", nil)
		return
	}

	token, err := s.signIn(c.Request.Context(), code)
	switch {
	case errors.Is(err, errProfile):
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	case errors.Is(err, errAccount):
		respond.Internal(c, nil)
		return
	case err != nil:
		respond.BadRequest(c, "failed to exchange code", nil)
		return
	}

	target, err := appendToken(s.uiRedirect, token)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// signIn exchanges the code, records the account and returns a session token.
func (s *GoogleService) signIn(ctx context.Context, code string) (string, error) {
	oauthToken, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	profile, err := s.fetchProfile(ctx, oauthToken)
	if err != nil {
		telemetry.Warn("auth.google.profile_failed", map[string]any{"error": err})
		return "", errProfile
	}

	user, err := s.accounts.UpsertFromAuth(ctx, users.User{
		ID:         accountIDPrefix + profile.Sub,
		Email:      profile.Email,
		FullName:   profile.Name,
		PictureURL: profile.Picture,
		Provider:   users.ProviderGoogle,
	})
	if err != nil {
		telemetry.Error("auth.google.upsert_failed", map[string]any{"error": err})
		return "", errAccount
	}

	session, err := s.tokens.Issue(sharedauth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.FullName,
		Picture: user.PictureURL,
	})
	if err != nil {
		telemetry.Error("auth.google.token_failed", map[string]any{"user_id": user.ID, "error": err})
		return "", errAccount
	}
	telemetry.Info("auth.google.signed_in", map[string]any{"user_id": user.ID})
	return session, nil
}

type googleProfile struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return googleProfile{}, err
	}
	resp, err := s.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var p googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return googleProfile{}, err
	}
	// v2 userinfo returns "id"; the OpenID endpoint returns "sub".
	if p.Sub == "" {
		p.Sub = p.ID
	}
	if p.Sub == "" || p.Email == "" {
		return googleProfile{}, errors.New("profile missing id or email")
	}
	return p, nil
}

// pendingStates holds issued OAuth states until they are used once or expire.
type pendingStates struct {
	mu     sync.Mutex
	ttl    time.Duration
	expiry map[string]time.Time
}

func newPendingStates(ttl time.Duration) *pendingStates {
	return &pendingStates{ttl: ttl, expiry: make(map[string]time.Time)}
}

// issue drops expired states before recording a new one.
func (p *pendingStates) issue(now time.Time) string {
	state := uuid.NewString()
	p.mu.Lock()
	defer p.mu.Unlock()
	for s, exp := range p.expiry {
		if now.After(exp) {
			delete(p.expiry, s)
		}
	}
	p.expiry[state] = now.Add(p.ttl)
	return state
}

func (p *pendingStates) consume(state string, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	exp, ok := p.expiry[state]
	delete(p.expiry, state)
	return ok && !now.After(exp)
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
