package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/auth"
)

const secretEnv = "PIXELMMO_AUTH_SECRET"

type AuthConfig struct {
	Secret string `json:"secret"`
	Issuer string `json:"issuer"`
}

func (c *AuthConfig) secret() string {
	if s := os.Getenv(secretEnv); s != "" {
		return s
	}
	return c.Secret
}

func (c *AuthConfig) validate() error {
	el := errors.NewErrorList()

	if len(c.secret()) < 16 {
		el.Add(fmt.Errorf("auth: secret must be at least 16 bytes (set secret or %s)", secretEnv))
	}

	return el.Err()
}

func (c *AuthConfig) BuildVerifier() *auth.Verifier {
	var opts []auth.VerifierOpt
	if c.Issuer != "" {
		opts = append(opts, auth.WithIssuer(c.Issuer))
	}
	return auth.NewVerifier(c.secret(), opts...)
}
