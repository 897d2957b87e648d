package simulation

type recordingPublisher struct {
	messages []publishedMessage
}

type publishedMessage struct {
	connID string
	data   string
}

func (p *recordingPublisher) Publish(connID string, data []byte) error {
	p.messages = append(p.messages, publishedMessage{connID: connID, data: string(data)})
	return nil
}
