package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Listener      ListenerConfig      `json:"listener"`
	Storage       StorageConfig       `json:"storage"`
	Bus           BusConfig           `json:"bus"`
	Auth          AuthConfig          `json:"auth"`
	Tuning        TuningConfig        `json:"tuning"`
	Journal       JournalConfig       `json:"journal"`
	PlayerManager PlayerManagerConfig `json:"player_manager"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Listener.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Bus.validate())
	el.Add(c.Auth.validate())
	el.Add(c.Tuning.validate())
	el.Add(c.Journal.validate())
	el.Add(c.PlayerManager.validate())

	return el.Err()
}
