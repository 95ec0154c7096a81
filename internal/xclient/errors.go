package xclient

import "errors"

var (
	// ErrVerificationRequired means X asked for a code or extra
	// verification during sign-in; a human has to finish it.
	ErrVerificationRequired = errors.New("xclient: verification required")

	// ErrFollowLimitReached means X showed the "unable to follow more
	// people" notice.
	ErrFollowLimitReached = errors.New("xclient: follow limit reached")

	// ErrNoPost means the profile has no post that can be engaged with.
	ErrNoPost = errors.New("xclient: no post found")

	// ErrUserNotFound means the profile page does not exist.
	ErrUserNotFound = errors.New("xclient: user not found")

	// ErrAccountLocked means X has locked the signed-in account.
	ErrAccountLocked = errors.New("xclient: account locked")
)
