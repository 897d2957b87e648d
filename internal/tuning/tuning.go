package tuning

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"gopkg.in/yaml.v3"
)

// Rules holds every gameplay constant of the server. Fields left out of a
// tuning file keep their default.
type Rules struct {
	TickMs              int `yaml:"tick_ms"`
	AIEveryTicks        int `yaml:"ai_every_ticks"`
	BroadcastEveryTicks int `yaml:"broadcast_every_ticks"`

	InteractionRange float64 `yaml:"interaction_range"`
	MaxMoveStep      float64 `yaml:"max_move_step"`

	Monsters MonsterRules      `yaml:"monsters"`
	Skilling SkillingRules     `yaml:"skilling"`
	Fires    FireRules         `yaml:"fires"`
	Respawn  RespawnRules      `yaml:"respawn"`
	Spawns   game.Spawns       `yaml:"spawns"`
	Messages map[string]string `yaml:"messages"`
}

type MonsterRules struct {
	AggroRange       float64     `yaml:"aggro_range"`
	AttackRange      float64     `yaml:"attack_range"`
	LeashRange       float64     `yaml:"leash_range"`
	LeashStep        float64     `yaml:"leash_step"`
	ChaseStep        float64     `yaml:"chase_step"`
	WanderStep       float64     `yaml:"wander_step"`
	WanderBounds     game.Bounds `yaml:"wander_bounds"`
	AttackCooldownMs int         `yaml:"attack_cooldown_ms"`
	DamageMin        int         `yaml:"damage_min"`
	DamageMax        int         `yaml:"damage_max"`
}

type SkillingRules struct {
	FishingSuccessChance float64 `yaml:"fishing_success_chance"`
	FishingXP            int     `yaml:"fishing_xp"`
	WoodcuttingXP        int     `yaml:"woodcutting_xp"`
	CombatXPPerDamage    int     `yaml:"combat_xp_per_damage"`
}

type FireRules struct {
	LifetimeMs int     `yaml:"lifetime_ms"`
	HealRange  float64 `yaml:"heal_range"`
	HealAmount int     `yaml:"heal_amount"`
}

type RespawnRules struct {
	ResourceMs int     `yaml:"resource_ms"`
	MonsterMs  int     `yaml:"monster_ms"`
	PlayerX    float64 `yaml:"player_x"`
	PlayerY    float64 `yaml:"player_y"`
}

// Default returns the stock rules of the starter world.
func Default() Rules {
	return Rules{
		TickMs:              50,
		AIEveryTicks:        40,
		BroadcastEveryTicks: 20,
		InteractionRange:    100,
		Monsters: MonsterRules{
			AggroRange:       150,
			AttackRange:      80,
			LeashRange:       300,
			LeashStep:        30,
			ChaseStep:        15,
			WanderStep:       20,
			WanderBounds:     game.Bounds{MinX: 400, MaxX: 800, MinY: 200, MaxY: 600},
			AttackCooldownMs: 3000,
			DamageMin:        3,
			DamageMax:        8,
		},
		Skilling: SkillingRules{
			FishingSuccessChance: 0.8,
			FishingXP:            15,
			WoodcuttingXP:        20,
			CombatXPPerDamage:    5,
		},
		Fires: FireRules{
			LifetimeMs: 300000,
			HealRange:  100,
			HealAmount: 2,
		},
		Respawn: RespawnRules{
			ResourceMs: 30000,
			MonsterMs:  30000,
			PlayerX:    game.SpawnPoint.X,
			PlayerY:    game.SpawnPoint.Y,
		},
		Spawns: game.DefaultSpawns(),
	}
}

// Load reads a YAML tuning file over the defaults.
func Load(path string) (Rules, error) {
	r := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("validating %s: %w", path, err)
	}
	return r, nil
}

func (r *Rules) Validate() error {
	el := errors.NewErrorList()

	if r.TickMs <= 0 {
		el.Add(fmt.Errorf("tick_ms must be positive"))
	}
	if r.AIEveryTicks <= 0 {
		el.Add(fmt.Errorf("ai_every_ticks must be positive"))
	}
	if r.BroadcastEveryTicks <= 0 {
		el.Add(fmt.Errorf("broadcast_every_ticks must be positive"))
	}
	if r.InteractionRange <= 0 {
		el.Add(fmt.Errorf("interaction_range must be positive"))
	}
	if r.MaxMoveStep < 0 {
		el.Add(fmt.Errorf("max_move_step must not be negative"))
	}

	m := r.Monsters
	if m.DamageMin < 0 || m.DamageMax < m.DamageMin {
		el.Add(fmt.Errorf("monsters: damage range [%d, %d] is invalid", m.DamageMin, m.DamageMax))
	}
	if m.AttackRange > m.AggroRange {
		el.Add(fmt.Errorf("monsters: attack_range must not exceed aggro_range"))
	}
	if m.WanderBounds.MinX > m.WanderBounds.MaxX || m.WanderBounds.MinY > m.WanderBounds.MaxY {
		el.Add(fmt.Errorf("monsters: wander_bounds are inverted"))
	}
	if m.AttackCooldownMs < 0 {
		el.Add(fmt.Errorf("monsters: attack_cooldown_ms must not be negative"))
	}

	if c := r.Skilling.FishingSuccessChance; c < 0 || c > 1 {
		el.Add(fmt.Errorf("skilling: fishing_success_chance must be within [0, 1]"))
	}
	if r.Fires.LifetimeMs <= 0 {
		el.Add(fmt.Errorf("fires: lifetime_ms must be positive"))
	}

	for i, ms := range r.Spawns.Monsters {
		if ms.MaxHealth <= 0 {
			el.Add(fmt.Errorf("spawns: monster %d max_health must be positive", i))
		}
	}

	return el.Err()
}

func (r Rules) TickLength() time.Duration {
	return time.Duration(r.TickMs) * time.Millisecond
}

func (r Rules) AttackCooldown() time.Duration {
	return time.Duration(r.Monsters.AttackCooldownMs) * time.Millisecond
}

func (r Rules) ResourceRespawn() time.Duration {
	return time.Duration(r.Respawn.ResourceMs) * time.Millisecond
}

func (r Rules) MonsterRespawn() time.Duration {
	return time.Duration(r.Respawn.MonsterMs) * time.Millisecond
}

func (r Rules) FireLifetime() time.Duration {
	return time.Duration(r.Fires.LifetimeMs) * time.Millisecond
}

func (r Rules) PlayerRespawnPoint() game.Position {
	return game.Position{X: r.Respawn.PlayerX, Y: r.Respawn.PlayerY}
}

// WorldSpawns returns the spawn layout with the configured attack cooldown.
func (r Rules) WorldSpawns() game.Spawns {
	sp := r.Spawns
	sp.AttackCooldown = r.AttackCooldown()
	return sp
}
