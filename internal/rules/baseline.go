// Package rules implements engine.RuleModule: the pluggable combat,
// ability, condition, movement, damage, and healing hooks resolvers
// call into. Baseline is a d20 ruleset grounded on the attack-roll,
// damage-roll, and initiative mechanics of a conventional tabletop
// combat engine; Homebrew is an alternate ruleset demonstrating that
// the resolver layer never hardcodes a single rules system.
package rules

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
)

// Baseline is the default d20 ruleset: 1d20 + modifier attack rolls
// against AC, disadvantage via condition effects (there is no
// advantage roll), and
// standard critical-hit doubling on damage dice.
type Baseline struct{}

func NewBaseline() *Baseline { return &Baseline{} }

func (b *Baseline) ID() string          { return "baseline-d20" }
func (b *Baseline) Name() string        { return "Baseline d20" }
func (b *Baseline) Version() string     { return "1.0.0" }
func (b *Baseline) Description() string { return "Standard d20 attack rolls, AC, and critical damage doubling." }
func (b *Baseline) Author() string      { return "core" }

func (b *Baseline) Combat() engine.CombatRules       { return baselineCombat{} }
func (b *Baseline) Abilities() engine.AbilityRules    { return baselineAbilities{} }
func (b *Baseline) Conditions() engine.ConditionRules { return baselineConditions{} }
func (b *Baseline) Movement() engine.MovementRules    { return baselineMovement{} }
func (b *Baseline) Damage() engine.DamageRules        { return baselineDamage{} }
func (b *Baseline) Healing() engine.HealingRules      { return baselineHealing{} }

type baselineCombat struct{}

func (baselineCombat) AttackRoll(state *engine.GameState, attacker, target *engine.Entity) engine.AttackRollResult {
	disadvantage := baselineConditions{}.HasAttackDisadvantage(attacker)
	raw := state.RNG.RollD20("attack_roll")
	if disadvantage {
		second := state.RNG.RollD20("attack_roll_disadvantage")
		if second < raw {
			raw = second
		}
	}
	return engine.AttackRollResult{Raw: raw, Disadvantage: disadvantage}
}

func (baselineCombat) DamageRoll(state *engine.GameState, attacker, target *engine.Entity, weapon string, isCritical bool) int {
	base := state.RNG.RollDice(1, 6, "damage_roll")
	if isCritical {
		base += state.RNG.RollDice(1, 6, "damage_roll_critical")
	}
	return base + attacker.Stats.GetDamageBonus()
}

func (baselineCombat) Initiative(state *engine.GameState, entity *engine.Entity) int {
	dexMod := 0
	if entity.Stats.Dexterity != nil {
		dexMod = (*entity.Stats.Dexterity - 10) / 2
	}
	return state.RNG.RollD20("initiative") + dexMod
}

func (baselineCombat) AttackRange(attacker *engine.Entity, weapon string) int {
	return attacker.Stats.GetAttackRange()
}

// CanAttack is a pure range/reachability check. Whether the attacker is
// in a condition to act at all (stunned, dead, ...) is the resolver's
// own precondition to enforce, ahead of this one.
func (baselineCombat) CanAttack(state *engine.GameState, attacker, target *engine.Entity) bool {
	return attacker.Position.Chebyshev(target.Position) <= attacker.Stats.GetAttackRange()
}

func (baselineCombat) AttackModifier(state *engine.GameState, entity *engine.Entity) int {
	mod := entity.Stats.GetAttackBonus()
	mod += baselineConditions{}.Effects("").AttackModifier
	for _, c := range entity.Conditions {
		mod += baselineConditions{}.Effects(c).AttackModifier
	}
	return mod
}

func (baselineCombat) ACModifier(state *engine.GameState, entity *engine.Entity) int {
	mod := 0
	for _, c := range entity.Conditions {
		mod += baselineConditions{}.Effects(c).ACModifier
	}
	return mod
}

type baselineAbilities struct{}

func (baselineAbilities) CanUse(state *engine.GameState, caster *engine.Entity, abilityID string, target *engine.Entity) bool {
	if caster.AbilityCooldowns == nil {
		return true
	}
	return caster.AbilityCooldowns[abilityID] <= 0
}

func (baselineAbilities) Resolve(state *engine.GameState, caster *engine.Entity, abilityID string, target *engine.Entity) ([]engine.Event, error) {
	if caster.AbilityCooldowns == nil {
		caster.AbilityCooldowns = map[string]int{}
	}
	caster.AbilityCooldowns[abilityID] = baselineAbilities{}.Cooldown(abilityID)
	return nil, nil
}

func (baselineAbilities) Cooldown(abilityID string) int { return 3 }

func (baselineAbilities) Cost(abilityID string) map[string]int { return nil }

type baselineConditions struct{}

var baselineConditionEffects = map[string]engine.ConditionEffect{
	engine.CondStunned:  {SkipsTurn: true, DurationRounds: 1},
	engine.CondPoisoned: {AttackModifier: -2, TickDamage: 1, DurationRounds: 3},
	engine.CondProne:    {ACModifier: 2, DurationRounds: 0},
	engine.CondBlessed:  {AttackModifier: 2, DurationRounds: 3},
	engine.CondBurning:  {TickDamage: 2, DurationRounds: 2},
}

func (baselineConditions) Apply(entity *engine.Entity, condition string) {
	entity.AddCondition(condition)
}

func (baselineConditions) Tick(entity *engine.Entity, active []string) {
	for _, c := range active {
		if dmg := baselineConditionEffects[c].TickDamage; dmg > 0 {
			entity.Stats.HPCurrent -= dmg
			if entity.Stats.HPCurrent < 0 {
				entity.Stats.HPCurrent = 0
			}
		}
	}
}

func (baselineConditions) Effects(condition string) engine.ConditionEffect {
	return baselineConditionEffects[condition]
}

func (baselineConditions) HasAttackDisadvantage(entity *engine.Entity) bool {
	return entity.HasCondition(engine.CondProne) || entity.HasCondition(engine.CondPoisoned)
}

func (baselineConditions) ShouldSkipTurn(entity *engine.Entity) bool {
	for _, c := range entity.Conditions {
		if baselineConditionEffects[c].SkipsTurn {
			return true
		}
	}
	return false
}

type baselineMovement struct{}

func (baselineMovement) Speed(entity *engine.Entity, conditions []string, terrain engine.TileKind) int {
	speed := entity.Stats.MovementSpeed
	for _, c := range conditions {
		if c == engine.CondProne {
			speed /= 2
		}
		if c == engine.CondStunned {
			return 0
		}
	}
	return speed
}

func (baselineMovement) TerrainCost(kind engine.TileKind) int {
	switch kind {
	case engine.TileOpen:
		return 1
	case engine.TileDifficult:
		return 2
	case engine.TileWater:
		return 2
	case engine.TileBlocked, engine.TilePit:
		return engine.ImpassableCost
	default:
		return 1
	}
}

func (baselineMovement) CanMoveTo(state *engine.GameState, entity *engine.Entity, pos engine.Position) bool {
	if !state.Map.InBounds(pos) {
		return false
	}
	return !state.Map.TileAt(pos).BlocksMovement
}

type baselineDamage struct{}

func (baselineDamage) Reduction(amount int, target *engine.Entity, damageType string) int {
	if target.Stats.DamageReduction != nil {
		amount -= *target.Stats.DamageReduction
	}
	if amount < 0 {
		return 0
	}
	return amount
}

func (baselineDamage) Resistance(amount int, target *engine.Entity, damageType string) int {
	for _, r := range target.Resistances {
		if r == damageType {
			return amount / 2
		}
	}
	return amount
}

func (baselineDamage) Critical(base int, isCrit bool) int {
	if isCrit {
		return base * 2
	}
	return base
}

type baselineHealing struct{}

func (baselineHealing) Amount(state *engine.GameState, healer, target *engine.Entity, spell string) int {
	return state.RNG.RollDice(2, 4, "heal_roll")
}

func (baselineHealing) CanHeal(healer, target *engine.Entity) bool {
	return !target.IsDead()
}
