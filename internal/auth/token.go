package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultIssuer = "pixelmmo"
	tokenVersion  = 1

	// clockSkew is how far in the future an issue time may be.
	clockSkew = time.Minute
)

// Claims identify the player a token was issued for.
type Claims struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Issuer   string `json:"iss"`
	Version  int    `json:"ver"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// Verifier checks bearer tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	issuer string
	clock  func() time.Time
}

type VerifierOpt func(*Verifier)

func WithVerifierClock(clock func() time.Time) VerifierOpt {
	return func(v *Verifier) {
		v.clock = clock
	}
}

func WithIssuer(issuer string) VerifierOpt {
	return func(v *Verifier) {
		v.issuer = issuer
	}
}

func NewVerifier(secret string, opts ...VerifierOpt) *Verifier {
	v := &Verifier{
		secret: []byte(secret),
		issuer: DefaultIssuer,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify returns the claims of a valid token.
func (v *Verifier) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMissingToken
	}

	payloadEnc, sig, ok := strings.Cut(token, ".")
	if !ok || strings.Contains(sig, ".") {
		return Claims{}, fmt.Errorf("%w: malformed", ErrInvalidToken)
	}
	if !hmac.Equal([]byte(sig), []byte(sign(payloadEnc, v.secret))) {
		return Claims{}, fmt.Errorf("%w: bad signature", ErrInvalidToken)
	}

	payload, err := base64.RawURLEncoding.DecodeString(payloadEnc)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: decoding payload: %v", ErrInvalidToken, err)
	}
	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: parsing payload: %v", ErrInvalidToken, err)
	}

	switch {
	case strings.TrimSpace(c.Subject) == "":
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	case c.Issuer != v.issuer:
		return Claims{}, fmt.Errorf("%w: issuer %q", ErrInvalidToken, c.Issuer)
	case c.Version != tokenVersion:
		return Claims{}, fmt.Errorf("%w: version %d", ErrInvalidToken, c.Version)
	}

	now := v.clock()
	if time.Unix(c.IssuedAt, 0).After(now.Add(clockSkew)) {
		return Claims{}, fmt.Errorf("%w: issued in the future", ErrInvalidToken)
	}
	if now.Unix() > c.Expires {
		return Claims{}, ErrTokenExpired
	}

	return c, nil
}

// Issuer mints tokens for operator tooling and tests.
type Issuer struct {
	secret []byte
	issuer string
	clock  func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		issuer: DefaultIssuer,
		clock:  time.Now,
	}
}

// Issue signs a token for subject valid for ttl.
func (i *Issuer) Issue(subject, username string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	now := i.clock()
	payload, err := json.Marshal(Claims{
		Subject:  subject,
		Username: username,
		Issuer:   i.issuer,
		Version:  tokenVersion,
		IssuedAt: now.Unix(),
		Expires:  now.Add(ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding claims: %w", err)
	}

	enc := base64.RawURLEncoding.EncodeToString(payload)
	return enc + "." + sign(enc, i.secret), nil
}

func sign(payloadEnc string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write([]byte(payloadEnc))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
