package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/ledger-backend/internal/data/repos"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/ctxutil"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

// ErrUnauthenticated means no known profile could be resolved for the request.
var ErrUnauthenticated = errors.New("unauthenticated")

type JWTClaims struct {
	ProfileType string `json:"profile_type,omitempty"`
	jwt.RegisteredClaims
}

// IdentityService resolves the calling profile. With a JWT secret only bearer tokens are accepted;
// without one the profile_id header names the caller.
type IdentityService interface {
	// Authenticate returns ctx carrying the caller's RequestData.
	Authenticate(ctx context.Context, profileHeader, bearerToken string) (context.Context, *ledger.Profile, error)
	// IssueToken signs a token whose subject is the profile id. It fails when tokens are disabled.
	IssueToken(profile *ledger.Profile, ttl time.Duration) (string, error)
	TokensEnabled() bool
}

type identityService struct {
	log          *logger.Logger
	profiles     repos.ProfileRepo
	jwtSecretKey string
}

func NewIdentityService(log *logger.Logger, profiles repos.ProfileRepo, jwtSecretKey string) IdentityService {
	if log == nil {
		log = logger.Nop()
	}
	return &identityService{
		log:          log.With("service", "IdentityService"),
		profiles:     profiles,
		jwtSecretKey: strings.TrimSpace(jwtSecretKey),
	}
}

func (s *identityService) TokensEnabled() bool { return s.jwtSecretKey != "" }

func (s *identityService) Authenticate(ctx context.Context, profileHeader, bearerToken string) (context.Context, *ledger.Profile, error) {
	var (
		id  uint
		err error
	)
	bearerToken = strings.TrimSpace(bearerToken)
	switch {
	case s.TokensEnabled() && bearerToken != "":
		id, err = s.parseToken(bearerToken)
	case s.TokensEnabled():
		// With a signing key configured the bare header is not trusted.
		err = fmt.Errorf("%w: bearer token required", ErrUnauthenticated)
	case strings.TrimSpace(profileHeader) != "":
		id, err = parseProfileID(profileHeader)
	default:
		err = fmt.Errorf("%w: missing profile_id", ErrUnauthenticated)
	}
	if err != nil {
		return ctx, nil, err
	}

	profile, err := s.profiles.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		s.log.Warn("caller lookup failed", "profile_id", id, "error", err)
		return ctx, nil, fmt.Errorf("lookup caller: %w", err)
	}
	if profile == nil {
		return ctx, nil, fmt.Errorf("%w: unknown profile %d", ErrUnauthenticated, id)
	}
	ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		ProfileID:   profile.ID,
		ProfileType: string(profile.Type),
		TokenString: bearerToken,
	})
	return ctx, profile, nil
}

func (s *identityService) IssueToken(profile *ledger.Profile, ttl time.Duration) (string, error) {
	if !s.TokensEnabled() {
		return "", errors.New("token signing disabled: JWT_SECRET_KEY is empty")
	}
	if profile == nil || profile.ID == 0 {
		return "", errors.New("profile required")
	}
	now := time.Now()
	claims := JWTClaims{
		ProfileType: string(profile.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(profile.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

func (s *identityService) parseToken(tokenString string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return 0, fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	}
	return parseProfileID(claims.Subject)
}

func parseProfileID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: invalid profile id %q", ErrUnauthenticated, raw)
	}
	return uint(n), nil
}
