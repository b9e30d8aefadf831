package session

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

// CookieName holds the signed session.
const CookieName = "storefront_session"

const (
	tokenLocal   = "session_token"
	sessionLocal = "session"
	cookieTTL    = 7 * 24 * time.Hour
)

type Options struct {
	Secret    string
	AuthURL   string
	PublicURL string
	Secure    bool
}

// Gate resolves sessions and guards admin routes.
type Gate struct {
	identity Identity
	opts     Options
}

func NewGate(identity Identity, opts Options) *Gate {
	return &Gate{identity: identity, opts: opts}
}

// LoginURL points at the identity provider with our callback as redirect.
func (g *Gate) LoginURL() string {
	return g.opts.AuthURL + "/?redirect=" + url.QueryEscape(g.opts.PublicURL+"/admin/auth/callback")
}

// Resolve checks the session cookie against the backend. Any failure, network
// errors included, yields Anonymous.
func (g *Gate) Resolve(c *fiber.Ctx) Session {
	token, err := g.backendToken(c.Cookies(CookieName))
	if err != nil {
		return Anonymous{}
	}
	u, err := g.identity.Me(token)
	if err != nil {
		return Anonymous{}
	}
	return Authenticated{User: u, Token: token}
}

// RequireAuth rejects requests without a valid session by redirecting to the
// login page. On success the session is available through FromCtx.
func (g *Gate) RequireAuth() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  []byte(g.opts.Secret),
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  tokenLocal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Redirect("/admin/login", fiber.StatusSeeOther)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			tok, ok := c.Locals(tokenLocal).(*jwt.Token)
			if !ok {
				return c.Redirect("/admin/login", fiber.StatusSeeOther)
			}
			token, err := tokenFromClaims(tok)
			if err != nil {
				return c.Redirect("/admin/login", fiber.StatusSeeOther)
			}
			u, err := g.identity.Me(token)
			if err != nil {
				log.Warnf("session rejected by backend: %v", err)
				g.clearCookie(c)
				return c.Redirect("/admin/login", fiber.StatusSeeOther)
			}
			c.Locals(sessionLocal, Authenticated{User: u, Token: token})
			return c.Next()
		},
	})
}

// FromCtx returns the session set by RequireAuth, or Anonymous.
func FromCtx(c *fiber.Ctx) Session {
	if s, ok := c.Locals(sessionLocal).(Authenticated); ok {
		return s
	}
	return Anonymous{}
}

// Token returns the backend credential of an authenticated request.
func Token(c *fiber.Ctx) string {
	if s, ok := FromCtx(c).(Authenticated); ok {
		return s.Token
	}
	return ""
}

// Exchange trades the provider's one-time session id for a backend token and
// issues the session cookie.
func (g *Gate) Exchange(c *fiber.Ctx, sessionID string) (User, error) {
	if sessionID == "" {
		return User{}, ErrMissingSessionID
	}
	u, token, err := g.identity.ExchangeSession(sessionID)
	if err != nil {
		return User{}, fmt.Errorf("exchange session: %w", err)
	}
	signed, err := g.sign(u, token)
	if err != nil {
		return User{}, err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   g.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
	})
	return u, nil
}

// Logout ends the backend session when there is one and always drops the
// cookie.
func (g *Gate) Logout(c *fiber.Ctx) error {
	defer g.clearCookie(c)
	token, err := g.backendToken(c.Cookies(CookieName))
	if err != nil {
		return nil
	}
	return g.identity.Logout(token)
}

func (g *Gate) sign(u User, token string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"token": token,
		"exp":   time.Now().Add(cookieTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.opts.Secret))
}

func (g *Gate) backendToken(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidCookie
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(g.opts.Secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidCookie
	}
	return tokenFromClaims(tok)
}

func tokenFromClaims(tok *jwt.Token) (string, error) {
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCookie
	}
	token, ok := claims["token"].(string)
	if !ok || token == "" {
		return "", ErrInvalidCookie
	}
	return token, nil
}

func (g *Gate) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   g.opts.Secure,
		Expires:  time.Unix(0, 0),
	})
}
