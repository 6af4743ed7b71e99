package repository

import "errors"

// Business outcomes surfaced by write operations. Handlers translate these to
// HTTP statuses; anything else coming out of a repository is a store error.
var (
	// ErrNotFound means the row addressed by the identifier does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyDeleted means a soft delete was attempted on a row whose
	// deleted_at is already set.
	ErrAlreadyDeleted = errors.New("record already deleted")

	// ErrNoFieldsToUpdate means a patch carried no recognized fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
