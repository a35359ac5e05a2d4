package errutil

const (
	codeBase = 1000
)

const (
	Unknown = codeBase + iota
	ecInvalidArgument
	ecContradictoryPage
	ecMemberNotFound
	ecIllegalRoleChange
	ecNoPendingChanges
	ecAuthFailed
	ecTokenNotFound
	ecAlreadyApplied
	ecAlreadyMember
	ecContentRequired
	ecImageRequired
	ecTooLong
	ecUnexpectedResult
)

var errs = map[error]int{
	ErrInvalidArgument:   ecInvalidArgument,
	ErrContradictoryPage: ecContradictoryPage,
	ErrMemberNotFound:    ecMemberNotFound,
	ErrIllegalRoleChange: ecIllegalRoleChange,
	ErrNoPendingChanges:  ecNoPendingChanges,
	ErrAuthFailed:        ecAuthFailed,
	ErrTokenNotFound:     ecTokenNotFound,
	ErrAlreadyApplied:    ecAlreadyApplied,
	ErrAlreadyMember:     ecAlreadyMember,
	ErrContentRequired:   ecContentRequired,
	ErrImageRequired:     ecImageRequired,
	ErrTooLong:           ecTooLong,
	ErrUnexpectedResult:  ecUnexpectedResult,
}
