package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/journal"
)

type JournalConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
	Prefix  string `json:"prefix"`
}

func (c *JournalConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	el := errors.NewErrorList()
	if c.Dir == "" {
		el.Add(fmt.Errorf("journal: dir is required when enabled"))
	} else if _, err := os.Stat(c.Dir); err != nil {
		el.Add(fmt.Errorf("journal: invalid dir %q: %w", c.Dir, err))
	}
	return el.Err()
}

func (c *JournalConfig) BuildWriter() *journal.Writer {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "events"
	}
	return journal.NewWriter(c.Dir, prefix)
}
