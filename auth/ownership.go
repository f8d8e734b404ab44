package auth

import "github.com/user/blogger-go/apperror"

// AssertOwner compares a resource's recorded owner against the authenticated
// subject. It is a pure comparison with no I/O, used by mutation endpoints
// after the resource has been loaded. A mismatch is an authorization failure
// (403), never an authentication one.
func AssertOwner(resourceOwnerID, authenticatedUserID int) error {
	if resourceOwnerID != authenticatedUserID {
		return apperror.NewUnauthorizedError("Not Authorized", nil)
	}
	return nil
}
