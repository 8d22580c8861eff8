package season

import "errors"

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrInvalidTeam       = errors.New("invalid team")
	ErrStageConflict     = errors.New("league stage changed concurrently")
	ErrResetNotConfirmed = errors.New("reset requires the confirmation phrase")
	ErrBracketLocked     = errors.New("semifinal results are locked once the final exists")
)
