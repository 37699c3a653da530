package domain

import "time"

// Message is the envelope shared by kafka events, REST broadcasts and websocket frames.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// MetadataValue returns a metadata entry, tolerating a nil map.
func (m *Message) MetadataValue(key string) string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return m.Metadata[key]
}

// SetMetadata writes a metadata entry, allocating the map on first use.
func (m *Message) SetMetadata(key, value string) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	m.Metadata[key] = value
}
