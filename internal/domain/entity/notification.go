package entity

import (
	"time"
)

type NotificationType string

const (
	NotificationNewRequest          NotificationType = "new_request"
	NotificationRequestAccepted     NotificationType = "request_accepted"
	NotificationRequestDeclined     NotificationType = "request_declined"
	NotificationRequestCancelled    NotificationType = "request_cancelled"
	NotificationRequestCompleted    NotificationType = "request_completed"
	NotificationNewMessage          NotificationType = "new_message"
	NotificationNewFollower         NotificationType = "new_follower"
	NotificationReviewLeft          NotificationType = "review_left"
	NotificationDistributorApproved NotificationType = "distributor_approved"
	NotificationDistributorRejected NotificationType = "distributor_rejected"
	NotificationDistributorRevoked  NotificationType = "distributor_revoked"
	NotificationAccountBlocked      NotificationType = "account_blocked"
	NotificationAccountUnblocked    NotificationType = "account_unblocked"
	NotificationAccountDeleted      NotificationType = "account_deleted"
)

// Notification is written only as a side effect of domain operations and
// is mutated only to flip Read to true.
type Notification struct {
	ID          string           `json:"id" firestore:"id"`
	RecipientID string           `json:"recipient_id" firestore:"recipientId"`
	Type        NotificationType `json:"type" firestore:"type"`
	RelatedID   string           `json:"related_id" firestore:"relatedId"`
	Text        string           `json:"text" firestore:"text"`
	SenderID    string           `json:"sender_id,omitempty" firestore:"senderId,omitempty"`
	SenderName  string           `json:"sender_name,omitempty" firestore:"senderName,omitempty"`
	SenderImage string           `json:"sender_image,omitempty" firestore:"senderImage,omitempty"`
	Read        bool             `json:"read" firestore:"read"`
	CreatedAt   time.Time        `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// UnreadCounts is the pure client-side projection recomputed on every
// notification snapshot: total unread and unread of type new_message.
func UnreadCounts(notifications []*Notification) (unread, unreadMessages int) {
	for _, n := range notifications {
		if n.Read {
			continue
		}
		unread++
		if n.Type == NotificationNewMessage {
			unreadMessages++
		}
	}
	return unread, unreadMessages
}
