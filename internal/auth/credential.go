package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// ErrInteractionRequired means no token can be produced silently and
// the user must complete an interactive sign-in.
var ErrInteractionRequired = errors.New("interactive sign-in required")

// expirySkew keeps a cached access token from being used right at its
// expiry boundary.
const expirySkew = 2 * time.Minute

// DeviceCodePrompt shows the device-code verification instructions to
// the user during interactive sign-in.
type DeviceCodePrompt func(verificationURI, userCode string)

// CredentialProviderOptions configures a CredentialProvider.
type CredentialProviderOptions struct {
	TenantID string
	ClientID string
	Scopes   []string

	Cache  *TokenCache
	Prompt DeviceCodePrompt
}

// CredentialProvider acquires bearer tokens for the file store,
// silently when the cache allows it and through the device-code flow
// otherwise. It satisfies the azcore TokenCredential contract so it can
// feed any Graph client directly.
type CredentialProvider struct {
	oauth  oauth2.Config
	cache  *TokenCache
	prompt DeviceCodePrompt
}

func NewCredentialProvider(opts CredentialProviderOptions) (*CredentialProvider, error) {
	if opts.TenantID == "" || opts.ClientID == "" {
		return nil, fmt.Errorf("tenant_id and client_id are required")
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("token cache is required")
	}

	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{"offline_access", "Files.ReadWrite.All", "Sites.Read.All"}
	}

	return &CredentialProvider{
		oauth: oauth2.Config{
			ClientID: opts.ClientID,
			Endpoint: endpoints.AzureAD(opts.TenantID),
			Scopes:   scopes,
		},
		cache:  opts.Cache,
		prompt: opts.Prompt,
	}, nil
}

// CachedAccount returns the signed-in account name, if any.
func (p *CredentialProvider) CachedAccount() (string, bool) {
	tokens, ok, err := p.cache.Load()
	if err != nil || !ok || tokens.Account == "" {
		return "", false
	}
	return tokens.Account, true
}

// AcquireSilent produces a token without user interaction: the cached
// access token when still valid, otherwise a refresh-token grant.
// Returns ErrInteractionRequired when neither path is available.
func (p *CredentialProvider) AcquireSilent(ctx context.Context) (TokenSet, error) {
	tokens, ok, err := p.cache.Load()
	if err != nil {
		return TokenSet{}, err
	}
	if !ok {
		return TokenSet{}, ErrInteractionRequired
	}

	if tokens.AccessToken != "" && time.Until(tokenExpiry(tokens)) > expirySkew {
		return tokens, nil
	}

	if tokens.RefreshToken == "" {
		return TokenSet{}, ErrInteractionRequired
	}

	refreshed, err := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: tokens.RefreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// The authorization server rejected the refresh token;
			// only a fresh interactive sign-in can recover.
			log.Debug().Err(err).Msg("Refresh token rejected")
			return TokenSet{}, ErrInteractionRequired
		}
		// Transport-level failure: the network is down, not the grant.
		return TokenSet{}, fmt.Errorf("token refresh failed: %w", err)
	}

	updated := TokenSet{
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshed.RefreshToken,
		Expiry:       refreshed.Expiry,
		Account:      tokens.Account,
	}
	if updated.RefreshToken == "" {
		updated.RefreshToken = tokens.RefreshToken
	}

	if err := p.cache.Save(updated); err != nil {
		log.Warn().Err(err).Msg("Failed to persist refreshed tokens")
	}

	return updated, nil
}

// SignInInteractive runs the device-code flow and persists the
// resulting tokens.
func (p *CredentialProvider) SignInInteractive(ctx context.Context) (TokenSet, error) {
	deviceAuth, err := p.oauth.DeviceAuth(ctx)
	if err != nil {
		return TokenSet{}, fmt.Errorf("failed to start device-code flow: %w", err)
	}

	if p.prompt != nil {
		p.prompt(deviceAuth.VerificationURI, deviceAuth.UserCode)
	}

	token, err := p.oauth.DeviceAccessToken(ctx, deviceAuth)
	if err != nil {
		return TokenSet{}, fmt.Errorf("device-code sign-in failed: %w", err)
	}

	tokens := TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		Account:      accountFromToken(token.AccessToken),
	}

	if err := p.cache.Save(tokens); err != nil {
		return TokenSet{}, err
	}

	log.Info().Str("account", tokens.Account).Msg("Signed in")
	return tokens, nil
}

// SignOut drops the cached tokens.
func (p *CredentialProvider) SignOut() error {
	return p.cache.Clear()
}

// GetToken implements the azcore TokenCredential contract. Silent
// acquisition is attempted first; an interaction-required failure
// falls through to the device-code flow automatically when a prompt is
// configured.
func (p *CredentialProvider) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	tokens, err := p.AcquireSilent(ctx)
	if errors.Is(err, ErrInteractionRequired) && p.prompt != nil {
		tokens, err = p.SignInInteractive(ctx)
	}
	if err != nil {
		return azcore.AccessToken{}, err
	}

	return azcore.AccessToken{
		Token:     tokens.AccessToken,
		ExpiresOn: tokenExpiry(tokens),
	}, nil
}

// tokenExpiry prefers the stored expiry and falls back to the exp claim
// of the access token itself.
func tokenExpiry(tokens TokenSet) time.Time {
	if !tokens.Expiry.IsZero() {
		return tokens.Expiry
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokens.AccessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// accountFromToken extracts a display name for the signed-in account
// from the access token claims. Best effort only.
func accountFromToken(accessToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	for _, key := range []string{"preferred_username", "upn", "unique_name"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
