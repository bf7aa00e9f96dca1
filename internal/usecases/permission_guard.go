package usecases

import (
	"homeserve.backend/internal/domain/entities"
)

// transitionRoles maps each workflow transition to the roles that may invoke
// it. New transitions are additions to this table, not new branches in the
// workflows.
var transitionRoles = map[entities.Transition][]entities.UserRole{
	entities.TransitionSubmitForReview: {entities.UserRoleProvider},
	entities.TransitionAddDocument:     {entities.UserRoleProvider},
	entities.TransitionDeleteDocument:  {entities.UserRoleProvider},
	entities.TransitionReview:          {entities.UserRoleAdmin},
	entities.TransitionSetActive:       {entities.UserRoleAdmin},

	entities.TransitionCreateBooking:   {entities.UserRoleCustomer},
	entities.TransitionConfirmBooking:  {entities.UserRoleProvider},
	entities.TransitionRejectBooking:   {entities.UserRoleProvider},
	entities.TransitionCompleteBooking: {entities.UserRoleProvider},
	entities.TransitionCancelBooking:   {entities.UserRoleCustomer, entities.UserRoleProvider},
}

// PermissionGuard decides which actor may invoke which transition on an
// entity. It is a pure rule evaluator: providers act only on entities they
// own, customers only on bookings they created, administrators only on the
// administrative transitions.
type PermissionGuard struct{}

// CanTransition reports whether the actor may invoke the transition on an
// entity with the given ownership.
func (PermissionGuard) CanTransition(actor entities.Actor, owner entities.Ownership, transition entities.Transition) bool {
	roleAllowed := false
	for _, role := range transitionRoles[transition] {
		if role == actor.Role {
			roleAllowed = true
			break
		}
	}
	if !roleAllowed {
		return false
	}

	switch actor.Role {
	case entities.UserRoleAdmin:
		return true
	case entities.UserRoleProvider:
		return owner.ProviderID == actor.ID
	case entities.UserRoleCustomer:
		return owner.CustomerID == actor.ID
	}
	return false
}
