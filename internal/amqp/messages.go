package amqp

import (
	"encoding/json"
	"time"
)

// DatasetRefreshedMessage announces that a new dataset snapshot is
// available. Consumers reload from storage by version; the message
// carries no records.
type DatasetRefreshedMessage struct {
	Version     string    `json:"version"`
	Records     int       `json:"records"`
	RefreshedAt time.Time `json:"refreshed_at"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewDatasetRefreshedMessage creates a refresh announcement for a snapshot
func NewDatasetRefreshedMessage(version string, records int, refreshedAt time.Time) *DatasetRefreshedMessage {
	return &DatasetRefreshedMessage{
		Version:     version,
		Records:     records,
		RefreshedAt: refreshedAt,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DatasetRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func DatasetRefreshedMessageFromJSON(data []byte) (*DatasetRefreshedMessage, error) {
	var msg DatasetRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
