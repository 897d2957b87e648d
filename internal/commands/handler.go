package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-pixelmmo/internal/combat"
	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/messages"
	"github.com/pixil98/go-pixelmmo/internal/tuning"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Envelope is the client to server framing of a command.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CommandContext is everything a command sees while it holds the world.
type CommandContext struct {
	ConnID string
	Player *game.Player
	Store  *game.Store
	Out    *events.Outbox
	Now    time.Time
}

// CommandFunc handles one decoded command. Returning a *UserError replies to
// the sender; any other error is a system failure.
type CommandFunc func(cmdCtx *CommandContext, payload json.RawMessage) error

type compiledCommand struct {
	schema  *jsonschema.Schema
	cmdFunc CommandFunc
}

// Handler validates and dispatches player commands.
type Handler struct {
	world    *game.World
	engine   *combat.Engine
	catalog  items.Catalog
	rules    tuning.Rules
	msgs     *messages.Catalog
	clock    func() time.Time
	newID    func() string
	compiled map[string]*compiledCommand
}

type HandlerOpt func(*Handler)

func WithClock(clock func() time.Time) HandlerOpt {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithIDGenerator overrides how fire ids are made.
func WithIDGenerator(newID func() string) HandlerOpt {
	return func(h *Handler) {
		h.newID = newID
	}
}

func NewHandler(world *game.World, engine *combat.Engine, catalog items.Catalog, rules tuning.Rules, msgs *messages.Catalog, opts ...HandlerOpt) (*Handler, error) {
	h := &Handler{
		world:    world,
		engine:   engine,
		catalog:  catalog,
		rules:    rules,
		msgs:     msgs,
		clock:    time.Now,
		newID:    uuid.NewString,
		compiled: make(map[string]*compiledCommand),
	}
	for _, opt := range opts {
		opt(h)
	}

	builtins := []struct {
		name   string
		schema string
		fn     CommandFunc
	}{
		{CmdMove, positionSchema, h.move},
		{CmdAttack, idSchema("monsterId"), h.attack},
		{CmdFish, idSchema("spotId"), h.fish},
		{CmdChop, idSchema("treeId"), h.chop},
		{CmdUseItem, useItemSchema, h.useItem},
		{CmdPlaceFirepit, positionSchema, h.placeFirepit},
		{CmdPickupGroundItem, idSchema("groundItemId"), h.pickupGroundItem},
	}
	for _, b := range builtins {
		if err := h.Register(b.name, b.schema, b.fn); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Register adds a command with the JSON schema its payload must satisfy.
func (h *Handler) Register(name, schema string, fn CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("command %q has no handler", name)
	}
	if _, exists := h.compiled[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}

	sch, err := jsonschema.CompileString(name+".json", schema)
	if err != nil {
		return fmt.Errorf("compiling %s schema: %w", name, err)
	}

	h.compiled[name] = &compiledCommand{schema: sch, cmdFunc: fn}
	return nil
}

// Exec decodes one raw client message and runs it as a single unit of work.
// Malformed or unknown commands are dropped.
func (h *Handler) Exec(ctx context.Context, connID string, raw []byte) error {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		slog.WarnContext(ctx, "dropping malformed command", "connId", connID, "error", err)
		return nil
	}

	compiled, ok := h.compiled[env.Type]
	if !ok {
		slog.DebugContext(ctx, "dropping unknown command", "connId", connID, "type", env.Type)
		return nil
	}

	if err := validatePayload(compiled.schema, env.Payload); err != nil {
		slog.WarnContext(ctx, "dropping invalid command", "connId", connID, "type", env.Type, "error", err)
		return nil
	}

	now := h.clock()
	return h.world.Exec(ctx, func(s *game.Store, out *events.Outbox) error {
		p := s.Player(connID)
		if p == nil {
			return nil
		}

		err := compiled.cmdFunc(&CommandContext{
			ConnID: connID,
			Player: p,
			Store:  s,
			Out:    out,
			Now:    now,
		}, env.Payload)

		var ue *UserError
		if errors.As(err, &ue) {
			out.Send(connID, ue.Event, events.ErrorReply{Error: ue.Message})
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", env.Type, err)
		}
		return nil
	})
}

func validatePayload(sch *jsonschema.Schema, payload json.RawMessage) error {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	dec := json.NewDecoder(strings.NewReader(string(payload)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return sch.Validate(v)
}

func (h *Handler) userError(event, key string) *UserError {
	return NewUserError(event, h.msgs.Text(key, nil))
}

func sendInventory(cmdCtx *CommandContext) {
	cmdCtx.Out.Send(cmdCtx.ConnID, events.InventoryUpdate, events.InventoryUpdateData{
		Inventory: cmdCtx.Player.Inventory.Stacks(),
	})
}

func sendSkill(cmdCtx *CommandContext, name string) {
	sk := cmdCtx.Player.Skills.Get(name)
	if sk == nil {
		return
	}
	cmdCtx.Out.Send(cmdCtx.ConnID, events.SkillUpdate, events.SkillUpdateData{
		Skill: name,
		Level: sk.Level,
		XP:    sk.XP,
	})
}

// grantXP awards xp and returns the wire form of any level gained.
func grantXP(p *game.Player, skill string, xp int) (*events.LevelUpData, error) {
	lu, err := p.Skills.AddXP(skill, xp)
	if err != nil {
		return nil, fmt.Errorf("granting %s xp: %w", skill, err)
	}
	return events.NewLevelUpData(lu), nil
}
