package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/intervalrain/chatbot-api/internal/models"
)

var (
	// ErrUnauthenticated covers a missing/malformed Authorization header,
	// a bad signature, a wrong issuer/audience and an expired token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrMalformedToken covers a token that verifies but does not carry
	// exactly one value for a single-valued claim. The issuer never emits
	// such tokens, so treat them as forged.
	ErrMalformedToken = errors.New("malformed token")
)

const metadataClaimPrefix = "Metadata_"

// TokenService issues and validates the HS256 bearer tokens used by the API.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration

	now func() time.Time
}

func NewTokenService(secret, issuer, audience string, expiryMinutes int) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   time.Duration(expiryMinutes) * time.Minute,
		now:      time.Now,
	}
}

// IssueToken builds the claim set for a user and returns the compact signed
// token. Roles, permissions and metadata values each become one claim
// instance; a single instance serializes as a bare string and multiple as an
// array, matching the upstream JWT handler output.
func (s *TokenService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":         user.UserID,
		"name":        user.EngName,
		"ChineseName": user.ChiName,
		"email":       user.Email,
		"jti":         uuid.NewString(),
		"iss":         s.issuer,
		"aud":         s.audience,
		"exp":         jwt.NewNumericDate(s.now().Add(s.expiry)),
	}

	if c := multiClaim(user.Roles); c != nil {
		claims["role"] = c
	}
	if c := multiClaim(user.Permissions); c != nil {
		claims["Permission"] = c
	}
	for key, values := range user.Metadata {
		if c := multiClaim(values); c != nil {
			claims[metadataClaimPrefix+key] = c
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExtractCurrentUser parses the Authorization header, verifies the token and
// projects its claims into a CurrentUser. It is a pure function of the header
// and the configured secret/issuer/audience.
func (s *TokenService) ExtractCurrentUser(authorizationHeader string) (*models.CurrentUser, error) {
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthenticated)
	}
	tokenStr := strings.TrimPrefix(authorizationHeader, bearerPrefix)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	userID, err := claimString(claims, "sub")
	if err != nil {
		return nil, err
	}
	engName, err := claimString(claims, "name")
	if err != nil {
		return nil, err
	}
	chiName, err := claimString(claims, "ChineseName")
	if err != nil {
		return nil, err
	}
	email, err := claimString(claims, "email")
	if err != nil {
		return nil, err
	}

	roles, err := claimStrings(claims, "role")
	if err != nil {
		return nil, err
	}
	permissions, err := claimStrings(claims, "Permission")
	if err != nil {
		return nil, err
	}

	metadata := map[string][]string{}
	for name := range claims {
		if !strings.HasPrefix(name, metadataClaimPrefix) {
			continue
		}
		values, err := claimStrings(claims, name)
		if err != nil {
			return nil, err
		}
		metadata[strings.TrimPrefix(name, metadataClaimPrefix)] = values
	}

	return &models.CurrentUser{
		UserID:         userID,
		EngName:        engName,
		ChiName:        chiName,
		Email:          email,
		Roles:          toSet(roles),
		Permissions:    toSet(permissions),
		MetaDataFilter: metadata,
	}, nil
}

// multiClaim encodes a repeated claim: nil when absent, a bare string for a
// single value, an array otherwise.
func multiClaim(values []string) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}

// claimString extracts a single-valued claim. Anything but exactly one plain
// string is a malformed token.
func claimString(claims jwt.MapClaims, name string) (string, error) {
	raw, ok := claims[name]
	if !ok {
		return "", fmt.Errorf("%w: missing claim %q", ErrMalformedToken, name)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: claim %q is not a single string", ErrMalformedToken, name)
	}
	return value, nil
}

// claimStrings extracts a repeated claim, accepting both the bare-string and
// the array encoding.
func claimStrings(claims jwt.MapClaims, name string) ([]string, error) {
	raw, ok := claims[name]
	if !ok {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: claim %q holds a non-string value", ErrMalformedToken, name)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: claim %q holds a non-string value", ErrMalformedToken, name)
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
