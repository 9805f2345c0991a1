package domain

import "errors"

var (
	// ErrValidation covers malformed or out-of-range input. Callers wrap it
	// with a human-readable detail; handlers map it to HTTP 400.
	ErrValidation = errors.New("validation failed")

	// ErrProfileNotFound means the referenced profile id does not exist or
	// the profile is deactivated. HTTP 404.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrEmailTaken means another profile already uses this email. HTTP 409.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInterestNotFound means the referenced interest id does not exist. HTTP 404.
	ErrInterestNotFound = errors.New("interest not found")

	// ErrSelfInterest means a user tried to express interest in themselves. HTTP 400.
	ErrSelfInterest = errors.New("cannot express interest in yourself")

	// ErrDuplicateInterest means an active (pending or accepted) interest
	// already exists for the same requester/target pair. HTTP 409.
	ErrDuplicateInterest = errors.New("active interest already exists")

	// ErrNotInterestTarget means someone other than the target tried to
	// respond to an interest. HTTP 403.
	ErrNotInterestTarget = errors.New("only the interest target may respond")

	// ErrInterestResolved means the interest was already accepted or rejected;
	// resolved interests are immutable. HTTP 409.
	ErrInterestResolved = errors.New("interest already resolved")

	// ErrMatchNotFound means there is no match for the given id or pair. HTTP 404.
	ErrMatchNotFound = errors.New("match not found")
)
