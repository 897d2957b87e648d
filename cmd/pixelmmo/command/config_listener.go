package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/listener"
)

type ListenerConfig struct {
	Port           uint16   `json:"port"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("listener: port must be set to a positive integer"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager, counter listener.PlayerCounter) *listener.WebsocketListener {
	return listener.NewWebsocketListener(cl.Port, cm, counter, cl.AllowedOrigins)
}
