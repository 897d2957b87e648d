package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

const assetVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_@-][a-zA-Z0-9_.@-]*$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// ValidIdentifier reports whether id can name a stored asset.
func ValidIdentifier(id string) bool {
	return identifierPattern.MatchString(id)
}

// Asset is the on-disk wrapper around a stored spec.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !ValidIdentifier(a.Identifier.String()) {
		el.Add(fmt.Errorf("id %q has invalid characters", a.Identifier))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}
