package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophcatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophcatalog/internal/common"
)

// TokenSource yields the current access token; "" means no token.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// StorageTokenSource reads the access token persisted by the session.
type StorageTokenSource struct {
	Repo metadata.Repository
}

func (s StorageTokenSource) AccessToken(ctx context.Context) (string, error) {
	token, _, err := s.Repo.Get(ctx, common.StorageKeyAccessToken)
	return token, err
}

// authTransport attaches "Authorization: Bearer <token>" to each outgoing
// request when a token is available. The caller's request is never mutated.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.base.RoundTrip(req)
	}

	token, err := t.tokens.AccessToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	return t.base.RoundTrip(r)
}

func withAuth(base http.RoundTripper, tokens TokenSource) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, tokens: tokens}
}
