package repositories

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// parseObjectID converts a request identifier into an ObjectID, translating
// a malformed value into ErrInvalidID.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// parseObjectIDs converts a batch of identifiers, skipping malformed ones.
// Batch reads are used for reference expansion, where a dangling or garbled
// reference expands to nothing rather than failing the whole read.
func parseObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}

// translateWriteError maps a unique-index violation to ErrDuplicate and
// leaves every other failure untouched.
func translateWriteError(err error, what string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, what)
	}
	return err
}
