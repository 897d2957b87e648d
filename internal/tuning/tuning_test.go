package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write tuning file: %v", err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	r := Default()
	if err := r.Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
	testutil.AssertEqual(t, "tick", r.TickLength(), 50*time.Millisecond)
	testutil.AssertEqual(t, "cooldown", r.AttackCooldown(), 3*time.Second)
	testutil.AssertEqual(t, "fire lifetime", r.FireLifetime(), 5*time.Minute)
	testutil.AssertEqual(t, "spawn cooldown", r.WorldSpawns().AttackCooldown, 3*time.Second)
	testutil.AssertEqual(t, "monsters", len(r.Spawns.Monsters), 5)
}

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		body   string
		check  func(t *testing.T, r Rules)
		expErr string
	}{
		"partial override keeps defaults": {
			body: "monsters:\n  aggro_range: 200\nskilling:\n  fishing_xp: 30\n",
			check: func(t *testing.T, r Rules) {
				testutil.AssertEqual(t, "aggro", r.Monsters.AggroRange, 200.0)
				testutil.AssertEqual(t, "attack range kept", r.Monsters.AttackRange, 80.0)
				testutil.AssertEqual(t, "fishing xp", r.Skilling.FishingXP, 30)
				testutil.AssertEqual(t, "woodcutting kept", r.Skilling.WoodcuttingXP, 20)
			},
		},
		"replace spawns": {
			body: "spawns:\n  monsters:\n    - {kind: troll, x: 10, y: 20, max_health: 80}\n",
			check: func(t *testing.T, r Rules) {
				testutil.AssertEqual(t, "monsters", len(r.Spawns.Monsters), 1)
				testutil.AssertEqual(t, "kind", r.Spawns.Monsters[0].Kind, "troll")
				testutil.AssertEqual(t, "trees kept", len(r.Spawns.Trees), 8)
			},
		},
		"message override": {
			body: "messages:\n  too_far: \"{{ upper \\\"too far\\\" }}\"\n",
			check: func(t *testing.T, r Rules) {
				testutil.AssertEqual(t, "override", r.Messages["too_far"], `{{ upper "too far" }}`)
			},
		},
		"invalid chance": {
			body:   "skilling:\n  fishing_success_chance: 1.5\n",
			expErr: "fishing_success_chance",
		},
		"invalid damage range": {
			body:   "monsters:\n  damage_min: 9\n  damage_max: 2\n",
			expErr: "damage range",
		},
		"bad yaml": {
			body:   "monsters: [\n",
			expErr: "parsing",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, err := Load(writeTuning(t, tt.body))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, r)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	testutil.AssertErrorContains(t, err, "reading tuning file")
}
