package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []RequestStatus{
		RequestPending,
		RequestAccepted,
		RequestDeclined,
		RequestCancelled,
		RequestCompleted,
		RequestChatting,
	}

	allowed := map[RequestStatus]map[RequestStatus]bool{
		RequestPending: {
			RequestAccepted:  true,
			RequestDeclined:  true,
			RequestCancelled: true,
		},
		RequestAccepted: {
			RequestCancelled: true,
		},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			expected := allowed[from][to]
			assert.Equal(t, expected, CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestCanTransitionCompletedOnlyViaPickup(t *testing.T) {
	// completed is never reachable through a bare status update
	for _, from := range []RequestStatus{RequestPending, RequestAccepted, RequestChatting} {
		assert.False(t, CanTransition(from, RequestCompleted), "from %s", from)
	}
}
