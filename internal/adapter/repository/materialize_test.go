package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kangenshare/internal/domain/entity"
)

func TestMaterializeUserEmptyDocument(t *testing.T) {
	user := MaterializeUser("u1", map[string]interface{}{})

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, entity.DistributorNone, user.DistributorStatus)
	assert.True(t, user.IsAcceptingRequests)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsBlocked)
	assert.Nil(t, user.DeletedAt)
	assert.Empty(t, user.PhLevels)
	assert.Empty(t, user.Followers)
	assert.Len(t, user.Availability, 7)
}

func TestMaterializeUserLegacyStatusField(t *testing.T) {
	cases := map[string]entity.DistributorStatus{
		"unverified": entity.DistributorNone,
		"pending":    entity.DistributorPending,
		"approved":   entity.DistributorApproved,
		"rejected":   entity.DistributorRejected,
		"revoked":    entity.DistributorRevoked,
		"garbage":    entity.DistributorNone,
	}

	for legacy, expected := range cases {
		user := MaterializeUser("u1", map[string]interface{}{
			"hostVerificationStatus": legacy,
		})
		assert.Equal(t, expected, user.DistributorStatus, "legacy value %q", legacy)
	}
}

func TestMaterializeUserStatusFieldWinsOverLegacy(t *testing.T) {
	user := MaterializeUser("u1", map[string]interface{}{
		"distributorStatus":      "approved",
		"hostVerificationStatus": "rejected",
	})

	assert.Equal(t, entity.DistributorApproved, user.DistributorStatus)
}

func TestMaterializeUserAvailabilityMerge(t *testing.T) {
	user := MaterializeUser("u1", map[string]interface{}{
		"availability": map[string]interface{}{
			"monday": map[string]interface{}{
				"enabled":   true,
				"startTime": "10:00",
			},
			// broken entry degrades to the default schedule
			"tuesday": "not-a-map",
		},
	})

	monday := user.Availability["monday"]
	assert.True(t, monday.Enabled)
	assert.Equal(t, "10:00", monday.StartTime)
	assert.Equal(t, "18:00", monday.EndTime)

	tuesday := user.Availability["tuesday"]
	assert.False(t, tuesday.Enabled)
	assert.Equal(t, "09:00", tuesday.StartTime)

	// days absent from the document still get the template
	assert.Contains(t, user.Availability, "sunday")
}

func TestMaterializeUserDeletedAt(t *testing.T) {
	deleted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	user := MaterializeUser("u1", map[string]interface{}{
		"deletedAt": deleted,
	})

	if assert.NotNil(t, user.DeletedAt) {
		assert.Equal(t, deleted, *user.DeletedAt)
	}
	assert.True(t, user.IsDeleted())
}

func TestMaterializeUserNumericCoercion(t *testing.T) {
	// Firestore hands back int64 for integers
	user := MaterializeUser("u1", map[string]interface{}{
		"rating":  4.5,
		"reviews": int64(12),
		"phLevels": []interface{}{
			8.5, int64(9),
		},
	})

	assert.Equal(t, 4.5, user.Rating)
	assert.Equal(t, 12, user.Reviews)
	assert.Equal(t, []float64{8.5, 9}, user.PhLevels)
}
