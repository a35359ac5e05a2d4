package errutil

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrContradictoryPage = errors.New("contradictory page: has next but no items")
	ErrMemberNotFound    = errors.New("member not found")
	ErrIllegalRoleChange = errors.New("illegal role change")
	ErrNoPendingChanges  = errors.New("no pending changes")
	ErrAuthFailed        = errors.New("auth failed")
	ErrTokenNotFound     = errors.New("token not found")
	ErrAlreadyApplied    = errors.New("already applied to the club")
	ErrAlreadyMember     = errors.New("already a member of the club")
	ErrContentRequired   = errors.New("content required")
	ErrImageRequired     = errors.New("at least one image required")
	ErrTooLong           = errors.New("text too long")
	ErrUnexpectedResult  = errors.New("unexpected result code")
)

// Code returns the numeric code of err, Unknown when its cause is not one
// of the errors above
func Code(err error) int {
	if c, ok := errs[pkgerrors.Cause(err)]; ok {
		return c
	}
	return Unknown
}

// ExitCode maps err to a process exit status: 0 for nil, 1 for errors
// without a code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return Code(err) - Unknown + 1
}
