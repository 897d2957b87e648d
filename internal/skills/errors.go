package skills

import "errors"

var (
	ErrUnknownSkill = errors.New("unknown skill")
	ErrNegativeXP   = errors.New("xp amount must not be negative")
)
