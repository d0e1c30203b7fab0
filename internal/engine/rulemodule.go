package engine

// RuleModule is the pluggable hook surface resolvers call into to
// compute combat/ability/condition/movement/damage/healing outcomes.
// It is defined here, in engine, rather than in the rules package that
// implements it, so that both engine's resolvers and rules' baseline
// implementation can depend on the same contract without an import
// cycle (rules imports engine for the entity/state types the hooks
// operate on).
type RuleModule interface {
	ID() string
	Name() string
	Version() string
	Description() string
	Author() string

	Combat() CombatRules
	Abilities() AbilityRules
	Conditions() ConditionRules
	Movement() MovementRules
	Damage() DamageRules
	Healing() HealingRules
}

// AttackRollResult is what Combat().AttackRoll returns: the raw roll(s)
// and whether disadvantage was applied, before modifiers.
type AttackRollResult struct {
	Raw          int
	Disadvantage bool
}

type CombatRules interface {
	AttackRoll(state *GameState, attacker, target *Entity) AttackRollResult
	DamageRoll(state *GameState, attacker, target *Entity, weapon string, isCritical bool) int
	Initiative(state *GameState, entity *Entity) int
	AttackRange(attacker *Entity, weapon string) int
	CanAttack(state *GameState, attacker, target *Entity) bool
	AttackModifier(state *GameState, entity *Entity) int
	ACModifier(state *GameState, entity *Entity) int
}

type AbilityRules interface {
	CanUse(state *GameState, caster *Entity, abilityID string, target *Entity) bool
	Resolve(state *GameState, caster *Entity, abilityID string, target *Entity) (events []Event, err error)
	Cooldown(abilityID string) int
	Cost(abilityID string) map[string]int
}

type ConditionRules interface {
	Apply(entity *Entity, condition string)
	Tick(entity *Entity, active []string)
	Effects(condition string) ConditionEffect
	HasAttackDisadvantage(entity *Entity) bool
	ShouldSkipTurn(entity *Entity) bool
}

// ConditionEffect describes one condition's mechanical impact: flat
// stat modifiers, whether it forbids attacking, and per-tick damage.
type ConditionEffect struct {
	ACModifier     int
	AttackModifier int
	BlocksAttack   bool
	SkipsTurn      bool
	TickDamage     int
	DurationRounds int
}

type MovementRules interface {
	Speed(entity *Entity, conditions []string, terrain TileKind) int
	TerrainCost(kind TileKind) int // returns a large sentinel for impassable
	CanMoveTo(state *GameState, entity *Entity, pos Position) bool
}

// ImpassableCost is the sentinel TerrainCost returns for terrain no
// movement budget can ever cross.
const ImpassableCost = 1 << 30

type DamageRules interface {
	Reduction(amount int, target *Entity, damageType string) int
	Resistance(amount int, target *Entity, damageType string) int
	Critical(base int, isCrit bool) int
}

type HealingRules interface {
	Amount(state *GameState, healer, target *Entity, spell string) int
	CanHeal(healer, target *Entity) bool
}
