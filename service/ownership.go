package service

import (
	"devconnect/apperror"
	"devconnect/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errNotAuthorized = apperror.Unauthorized("notauthorized", "You are not authorized")

// assertOwner fails unless the identity is the user that owns the resource.
func assertOwner(owner primitive.ObjectID, id *auth.Identity) error {
	if id == nil || owner.Hex() != id.ID {
		return errNotAuthorized
	}
	return nil
}
