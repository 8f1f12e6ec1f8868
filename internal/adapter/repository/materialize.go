package repository

import (
	"time"

	"kangenshare/internal/domain/entity"
)

// MaterializeUser turns a raw user document into a normalized User.
// Older or partially written documents are common: missing fields fall
// back to defaults, the legacy hostVerificationStatus field maps onto
// distributorStatus, and nested objects are merged field-by-field so a
// malformed document degrades to defaults instead of failing.
func MaterializeUser(id string, data map[string]interface{}) *entity.User {
	user := &entity.User{
		ID:             id,
		Email:          asString(data["email"]),
		Name:           asString(data["name"]),
		DisplayName:    asString(data["displayName"]),
		ProfilePicture: asString(data["profilePicture"]),
		Phone:          asString(data["phone"]),
		Bio:            asString(data["bio"]),
		Instagram:      asString(data["instagram"]),
		Facebook:       asString(data["facebook"]),
		LinkedIn:       asString(data["linkedin"]),
		Website:        asString(data["website"]),

		Rating:  asFloat(data["rating"]),
		Reviews: asInt(data["reviews"]),

		PhLevels: asFloatSlice(data["phLevels"]),

		IsVerified:          asBool(data["isVerified"], false),
		IsAcceptingRequests: asBool(data["isAcceptingRequests"], true),

		DistributorID:              asString(data["distributorId"]),
		DistributorStatus:          materializeDistributorStatus(data),
		DistributorProofDocuments:  materializeProofDocuments(data["distributorProofDocuments"]),
		DistributorRejectionReason: asString(data["distributorRejectionReason"]),

		VerificationReviewedAt:        asTimePtr(data["verificationReviewedAt"]),
		VerificationReviewedByAdminID: asString(data["verificationReviewedByAdminId"]),

		Followers: asStringSlice(data["followers"]),
		Following: asStringSlice(data["following"]),

		IsBlocked: asBool(data["isBlocked"], false),
		DeletedAt: asTimePtr(data["deletedAt"]),
		IsAdmin:   asBool(data["isAdmin"], false),

		OnboardingCompleted: asBool(data["onboardingCompleted"], false),
		OnboardingStep:      asInt(data["onboardingStep"]),

		CreatedAt: asTime(data["createdAt"]),
		UpdatedAt: asTime(data["updatedAt"]),
	}

	user.Address = materializeAddress(data["address"])
	user.Maintenance = materializeMaintenance(data["maintenance"])
	user.Availability = materializeAvailability(data["availability"])

	return user
}

func materializeDistributorStatus(data map[string]interface{}) entity.DistributorStatus {
	raw := asString(data["distributorStatus"])
	if raw == "" {
		// Legacy documents stored the status under hostVerificationStatus.
		raw = asString(data["hostVerificationStatus"])
		if raw == "unverified" {
			raw = string(entity.DistributorNone)
		}
	}

	switch entity.DistributorStatus(raw) {
	case entity.DistributorPending, entity.DistributorApproved, entity.DistributorRejected, entity.DistributorRevoked:
		return entity.DistributorStatus(raw)
	default:
		return entity.DistributorNone
	}
}

func materializeAddress(raw interface{}) entity.Address {
	data, _ := raw.(map[string]interface{})
	return entity.Address{
		Street:     asString(data["street"]),
		Number:     asString(data["number"]),
		PostalCode: asString(data["postalCode"]),
		City:       asString(data["city"]),
		Country:    asString(data["country"]),
	}
}

func materializeMaintenance(raw interface{}) entity.Maintenance {
	data, _ := raw.(map[string]interface{})
	return entity.Maintenance{
		LastFilterChange: asTimePtr(data["lastFilterChange"]),
		LastECleaning:    asTimePtr(data["lastECleaning"]),
	}
}

func materializeAvailability(raw interface{}) map[string]entity.DaySchedule {
	availability := entity.DefaultAvailability()

	data, ok := raw.(map[string]interface{})
	if !ok {
		return availability
	}

	for _, day := range entity.WeekDays {
		dayData, ok := data[day].(map[string]interface{})
		if !ok {
			continue
		}

		schedule := availability[day]
		schedule.Enabled = asBool(dayData["enabled"], schedule.Enabled)
		if start := asString(dayData["startTime"]); start != "" {
			schedule.StartTime = start
		}
		if end := asString(dayData["endTime"]); end != "" {
			schedule.EndTime = end
		}
		availability[day] = schedule
	}

	return availability
}

func materializeProofDocuments(raw interface{}) []entity.ProofDocument {
	items, ok := raw.([]interface{})
	if !ok {
		return []entity.ProofDocument{}
	}

	documents := make([]entity.ProofDocument, 0, len(items))
	for _, item := range items {
		data, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		documents = append(documents, entity.ProofDocument{
			ID:         asString(data["id"]),
			FileName:   asString(data["fileName"]),
			URL:        asString(data["url"]),
			UploadedAt: asTime(data["uploadedAt"]),
		})
	}
	return documents
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}, defaultValue bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asTime(v interface{}) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}

func asTimePtr(v interface{}) *time.Time {
	if t, ok := v.(time.Time); ok && !t.IsZero() {
		return &t
	}
	return nil
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func asFloatSlice(v interface{}) []float64 {
	items, ok := v.([]interface{})
	if !ok {
		return []float64{}
	}
	result := make([]float64, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case float64:
			result = append(result, n)
		case int64:
			result = append(result, float64(n))
		}
	}
	return result
}
