package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-pixelmmo/internal/tuning"
)

type TuningConfig struct {
	Path string `json:"path,omitempty"`
}

func (c *TuningConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("tuning: invalid path %q: %w", c.Path, err)
	}
	return nil
}

// BuildRules returns the stock rules unless a tuning file is configured.
func (c *TuningConfig) BuildRules() (tuning.Rules, error) {
	if c.Path == "" {
		return tuning.Default(), nil
	}
	return tuning.Load(c.Path)
}
