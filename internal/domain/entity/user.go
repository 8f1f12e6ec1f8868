package entity

import (
	"time"
)

type DistributorStatus string

const (
	DistributorNone     DistributorStatus = "none"
	DistributorPending  DistributorStatus = "pending"
	DistributorApproved DistributorStatus = "approved"
	DistributorRejected DistributorStatus = "rejected"
	DistributorRevoked  DistributorStatus = "revoked"
)

type Address struct {
	Street     string `json:"street" firestore:"street"`
	Number     string `json:"number" firestore:"number"`
	PostalCode string `json:"postal_code" firestore:"postalCode"`
	City       string `json:"city" firestore:"city"`
	Country    string `json:"country" firestore:"country"`
}

type DaySchedule struct {
	Enabled   bool   `json:"enabled" firestore:"enabled"`
	StartTime string `json:"start_time" firestore:"startTime"`
	EndTime   string `json:"end_time" firestore:"endTime"`
}

type Maintenance struct {
	LastFilterChange *time.Time `json:"last_filter_change,omitempty" firestore:"lastFilterChange,omitempty"`
	LastECleaning    *time.Time `json:"last_e_cleaning,omitempty" firestore:"lastECleaning,omitempty"`
}

type ProofDocument struct {
	ID         string    `json:"id" firestore:"id"`
	FileName   string    `json:"file_name" firestore:"fileName"`
	URL        string    `json:"url" firestore:"url"`
	UploadedAt time.Time `json:"uploaded_at" firestore:"uploadedAt"`
}

type User struct {
	ID             string `json:"id" firestore:"id"`
	Email          string `json:"email" firestore:"email"`
	Name           string `json:"name" firestore:"name"`
	DisplayName    string `json:"display_name" firestore:"displayName"`
	ProfilePicture string `json:"profile_picture" firestore:"profilePicture"`
	Phone          string `json:"phone" firestore:"phone"`
	Bio            string `json:"bio" firestore:"bio"`

	Instagram string `json:"instagram" firestore:"instagram"`
	Facebook  string `json:"facebook" firestore:"facebook"`
	LinkedIn  string `json:"linkedin" firestore:"linkedin"`
	Website   string `json:"website" firestore:"website"`

	Address Address `json:"address" firestore:"address"`

	Rating  float64 `json:"rating" firestore:"rating"`
	Reviews int     `json:"reviews" firestore:"reviews"`

	PhLevels     []float64              `json:"ph_levels" firestore:"phLevels"`
	Availability map[string]DaySchedule `json:"availability" firestore:"availability"`
	Maintenance  Maintenance            `json:"maintenance" firestore:"maintenance"`

	IsVerified          bool `json:"is_verified" firestore:"isVerified"`
	IsAcceptingRequests bool `json:"is_accepting_requests" firestore:"isAcceptingRequests"`

	DistributorID              string            `json:"distributor_id" firestore:"distributorId"`
	DistributorStatus          DistributorStatus `json:"distributor_status" firestore:"distributorStatus"`
	DistributorProofDocuments  []ProofDocument   `json:"distributor_proof_documents" firestore:"distributorProofDocuments"`
	DistributorRejectionReason string            `json:"distributor_rejection_reason" firestore:"distributorRejectionReason"`

	VerificationReviewedAt        *time.Time `json:"verification_reviewed_at,omitempty" firestore:"verificationReviewedAt,omitempty"`
	VerificationReviewedByAdminID string     `json:"verification_reviewed_by_admin_id,omitempty" firestore:"verificationReviewedByAdminId,omitempty"`

	Followers []string `json:"followers" firestore:"followers"`
	Following []string `json:"following" firestore:"following"`

	IsBlocked bool       `json:"is_blocked" firestore:"isBlocked"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
	IsAdmin   bool       `json:"is_admin" firestore:"isAdmin"`

	OnboardingCompleted bool `json:"onboarding_completed" firestore:"onboardingCompleted"`
	OnboardingStep      int  `json:"onboarding_step" firestore:"onboardingStep"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsHost is a derived projection and is never trusted from storage.
func (u *User) IsHost() bool {
	return u.DistributorStatus == DistributorApproved
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsFollowing(targetID string) bool {
	for _, id := range u.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// WeekDays lists schedule keys in display order.
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DefaultAvailability returns the 7-day template new and partially
// configured hosts are merged against.
func DefaultAvailability() map[string]DaySchedule {
	availability := make(map[string]DaySchedule, len(WeekDays))
	for _, day := range WeekDays {
		availability[day] = DaySchedule{
			Enabled:   false,
			StartTime: "09:00",
			EndTime:   "18:00",
		}
	}
	return availability
}
