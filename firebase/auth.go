package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// Identity is the verified caller behind an ID token.
type Identity struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	StoreID string `json:"storeId"`
}

// IsAdminFor reports whether the caller holds the admin role for storeID.
func (i Identity) IsAdminFor(storeID string) bool {
	return i.Role == "admin" && i.StoreID == storeID
}

// TokenVerifier is the Identity Provider seen by the HTTP layer.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type authVerifier struct {
	client *auth.Client
}

func NewTokenVerifier(ctx context.Context, app *firebase.App) (TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth client: %w", err)
	}
	return &authVerifier{client: client}, nil
}

func (v *authVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]any) *Identity {
	id := &Identity{UID: uid}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		id.Role = v
	}
	if v, ok := claims["storeId"].(string); ok {
		id.StoreID = v
	}
	return id
}
