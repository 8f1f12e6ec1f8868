package entity

import (
	"time"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestDeclined  RequestStatus = "declined"
	RequestCancelled RequestStatus = "cancelled"
	RequestCompleted RequestStatus = "completed"
	RequestChatting  RequestStatus = "chatting"
)

type WaterRequest struct {
	ID          string        `json:"id" firestore:"id"`
	RequesterID string        `json:"requester_id" firestore:"requesterId"`
	HostID      string        `json:"host_id" firestore:"hostId"`
	Status      RequestStatus `json:"status" firestore:"status"`

	PhLevel    float64   `json:"ph_level" firestore:"phLevel"`
	Liters     float64   `json:"liters" firestore:"liters"`
	PickupDate time.Time `json:"pickup_date" firestore:"pickupDate"`
	PickupTime string    `json:"pickup_time" firestore:"pickupTime"`
	Notes      string    `json:"notes" firestore:"notes"`

	// Display fields frozen at creation time so listings never need a
	// join. Profile edits after creation do not update them.
	RequesterName  string `json:"requester_name" firestore:"requesterName"`
	RequesterImage string `json:"requester_image" firestore:"requesterImage"`
	HostName       string `json:"host_name" firestore:"hostName"`
	HostImage      string `json:"host_image" firestore:"hostImage"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// requestTransitions enumerates every legal status edge. accepted ->
// completed is deliberately absent: completion goes through the pickup
// confirmation path, not a bare status update.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:  {RequestAccepted, RequestDeclined, RequestCancelled},
	RequestAccepted: {RequestCancelled},
}

// CanTransition reports whether a bare status update from one status to
// another is legal.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
