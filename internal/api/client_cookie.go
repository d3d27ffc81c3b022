package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const clientCookieName = "wc_client"

// ClientCookies issues and verifies the signed cookie that ties a browser
// to its controller and stored session. The token carries only the client
// id; the session itself lives server-side.
type ClientCookies struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewClientCookies(secret string, ttl time.Duration, secure bool) *ClientCookies {
	return &ClientCookies{secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

// Issue signs a token for clientID.
func (c *ClientCookies) Issue(clientID string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   clientID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify returns the client id in a token and when it was issued.
func (c *ClientCookies) Verify(token string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return "", time.Time{}, err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", time.Time{}, fmt.Errorf("invalid client id: %w", err)
	}
	var issued time.Time
	if claims.IssuedAt != nil {
		issued = claims.IssuedAt.Time
	}
	return claims.Subject, issued, nil
}

// Identify returns the client id of the request. A missing or invalid
// cookie yields a fresh id. refresh is true when the cookie should be
// (re)written: new ids and tokens past half their lifetime.
func (c *ClientCookies) Identify(r *http.Request) (clientID string, refresh bool) {
	cookie, err := r.Cookie(clientCookieName)
	if err != nil || cookie.Value == "" {
		return uuid.NewString(), true
	}
	id, issued, err := c.Verify(cookie.Value)
	if err != nil {
		return uuid.NewString(), true
	}
	return id, c.now().Sub(issued) > c.ttl/2
}

func (c *ClientCookies) Set(w http.ResponseWriter, clientID string) error {
	token, err := c.Issue(clientID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookieName,
		Value:    token,
		Path:     "/",
		Expires:  c.now().Add(c.ttl),
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
