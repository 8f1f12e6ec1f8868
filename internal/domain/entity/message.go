package entity

import (
	"time"
)

// Message belongs to exactly one water request and is immutable once
// created. Ordering is by the server-assigned timestamp, ascending.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	RequestID string    `json:"request_id" firestore:"requestId"`
	Sender    string    `json:"sender" firestore:"sender"`
	Text      string    `json:"text" firestore:"text"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}
