// internal/httpserver/player.go
//
// Anonymous player identity.
//
// There are no accounts. The first request from a browser gets a random
// player id wrapped in an HS256 JWT and stored in an HttpOnly cookie; later
// requests present it (cookie or "Authorization: Bearer") and the id keys
// the player's settings and history. A missing, expired or forged token just
// yields a fresh identity.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const (
	playerCookie = "wordlet_player"
	playerTTL    = 180 * 24 * time.Hour
	tokenIssuer  = "wordlet"
)

type ctxPlayerKey struct{}

// playerFrom returns the player id stored by withPlayer.
func playerFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// signPlayer issues a token for id.
func (s *Server) signPlayer(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(playerTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parsePlayer validates tok and returns its subject.
func (s *Server) parsePlayer(tok string) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.JWTSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// withPlayer resolves or creates the player identity for every request.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := "", false
		if tok := bearerOrCookie(r); tok != "" {
			id, ok = s.parsePlayer(tok)
		}
		if !ok {
			id = uuid.NewString()
			if tok, exp, err := s.signPlayer(id); err == nil {
				s.setPlayerCookie(w, tok, exp)
			} else {
				hlog.FromRequest(r).Warn().Err(err).Msg("sign player token")
			}
		}
		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("player", id)
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id)))
	})
}

func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := strings.HasPrefix(s.cfg.PublicBaseURL, "https://")
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // front-end served from another origin
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the player cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(playerCookie); err == nil {
		return c.Value
	}
	return ""
}
