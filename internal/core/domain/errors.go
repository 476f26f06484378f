package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrSelfDeletion   = errors.New("you cannot delete your own account")
	ErrNothingToApply = errors.New("no fields to update")
	ErrUserIsWinner   = errors.New("user is the recorded winner of a resolved tie")
	ErrHasVotes       = errors.New("a user who has received votes cannot become an admin")

	ErrDateNotFound     = errors.New("invalid voting date")
	ErrDateInactive     = errors.New("voting is not active for this date")
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrAlreadyVoted     = errors.New("you have already voted for this date")
	ErrVoteForOthers    = errors.New("you can only cast votes for yourself")

	ErrNoTie              = errors.New("no tie to resolve for this date")
	ErrWinnerNotTied      = errors.New("winner is not one of the tied candidates")
	ErrTieAlreadyResolved = errors.New("this tie has already been resolved")

	ErrInternal = errors.New("internal server error")
)
