package messages

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Message keys.
const (
	MonsterDead   = "monster_dead"
	TooFar        = "too_far"
	SpotDepleted  = "spot_depleted"
	TreeChopped   = "tree_chopped"
	InventoryFull = "inventory_full"
	InvalidItem   = "invalid_item"
	NotUsable     = "not_usable"
	NotInSlot     = "not_in_slot"
	NoLogs        = "no_logs"
	FishingFailed = "fishing_failed"
	PlayerDied    = "player_died"
	MoveTooFar    = "move_too_far"
)

var defaults = map[string]string{
	MonsterDead:   "Monster is dead",
	TooFar:        "Too far away",
	SpotDepleted:  "Fishing spot depleted",
	TreeChopped:   "Tree already chopped",
	InventoryFull: "Inventory full",
	InvalidItem:   "Invalid item",
	NotUsable:     "Item cannot be used",
	NotInSlot:     "Item not in inventory",
	NoLogs:        "No logs in inventory",
	FishingFailed: "You failed to catch anything.",
	PlayerDied:    "You have died! Respawning...",
	MoveTooFar:    "You cannot move that far at once",
}

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// Catalog renders player-facing text.
type Catalog struct {
	templates map[string]*template.Template
}

// New parses the default texts with overrides applied on top.
func New(overrides map[string]string) (*Catalog, error) {
	c := &Catalog{templates: map[string]*template.Template{}}

	texts := make(map[string]string, len(defaults))
	for k, v := range defaults {
		texts[k] = v
	}
	for k, v := range overrides {
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("unknown message key %q", k)
		}
		texts[k] = v
	}

	for k, v := range texts {
		tmpl, err := template.New(k).Funcs(templateFuncs).Parse(v)
		if err != nil {
			return nil, fmt.Errorf("parsing message %q: %w", k, err)
		}
		c.templates[k] = tmpl
	}
	return c, nil
}

// Default returns the catalog with the stock texts.
func Default() *Catalog {
	c, err := New(nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Text renders the message for key. A template that fails to render falls
// back to its key so the player still gets a reply.
func (c *Catalog) Text(key string, data any) string {
	tmpl, ok := c.templates[key]
	if !ok {
		slog.Warn("unknown message key", "key", key)
		return key
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Warn("rendering message", "key", key, "error", err)
		return key
	}
	return strings.TrimSpace(buf.String())
}
