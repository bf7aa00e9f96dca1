package entities

import "github.com/google/uuid"

// Transition names a workflow operation for permission checks
type Transition string

const (
	// Verification workflow
	TransitionSubmitForReview Transition = "submitForReview"
	TransitionReview          Transition = "review"
	TransitionAddDocument     Transition = "addDocument"
	TransitionDeleteDocument  Transition = "deleteDocument"
	TransitionSetActive       Transition = "setActive"

	// Booking workflow
	TransitionCreateBooking   Transition = "create"
	TransitionConfirmBooking  Transition = "confirm"
	TransitionRejectBooking   Transition = "reject"
	TransitionCompleteBooking Transition = "complete"
	TransitionCancelBooking   Transition = "cancel"
)

// Ownership identifies the parties that own an entity, as far as permission
// checks are concerned. A zero uuid means "no such party".
type Ownership struct {
	ProviderID uuid.UUID
	CustomerID uuid.UUID
}
