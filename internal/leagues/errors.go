package leagues

import "errors"

var (
	ErrInvalidScore          = errors.New("score must be an integer between 0 and 999")
	ErrInvalidTeamID         = errors.New("invalid team id")
	ErrDrawNotAllowed        = errors.New("draws are not allowed")
	ErrInsufficientTeams     = errors.New("at least two teams are required")
	ErrInsufficientStandings = errors.New("at least four ranked teams are required for the final four")
	ErrSemifinalsIncomplete  = errors.New("both semifinals must be played first")
	ErrUnknownTeamReference  = errors.New("match references an unknown team")
	ErrInvalidStage          = errors.New("operation not allowed in the current league stage")
	ErrFinalsExist           = errors.New("finals already exist")
	ErrMissingStartDate      = errors.New("start date is required")
	ErrMatchNotFound         = errors.New("match not found")
)
