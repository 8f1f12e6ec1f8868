package entity

import (
	"time"
)

// Review lives in the host's reviews sub-collection and is immutable
// after creation.
type Review struct {
	ID            string    `json:"id" firestore:"id"`
	HostID        string    `json:"host_id" firestore:"hostId"`
	ReviewerID    string    `json:"reviewer_id" firestore:"reviewerId"`
	ReviewerName  string    `json:"reviewer_name" firestore:"reviewerName"`
	ReviewerImage string    `json:"reviewer_image" firestore:"reviewerImage"`
	Rating        int       `json:"rating" firestore:"rating"`
	Comment       string    `json:"comment" firestore:"comment"`
	Date          time.Time `json:"date" firestore:"date"`
}

// NextRating folds one new rating into a running average.
func NextRating(rating float64, reviews int, newRating int) float64 {
	return (rating*float64(reviews) + float64(newRating)) / float64(reviews+1)
}
