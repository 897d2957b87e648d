package combat

import "errors"

var ErrMonsterDead = errors.New("monster is dead")
