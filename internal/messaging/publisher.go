package messaging

// ConnSubject is the subject a connection's outbound events travel on.
func ConnSubject(connID string) string {
	return "conn-" + connID
}

// NatsPublisher delivers encoded events to individual connections.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-connection message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) Publish(connID string, data []byte) error {
	return p.server.Publish(ConnSubject(connID), data)
}

// Subscribe registers handler for everything published to connID.
func (p *NatsPublisher) Subscribe(connID string, handler func(data []byte)) (func(), error) {
	return p.server.Subscribe(ConnSubject(connID), handler)
}
