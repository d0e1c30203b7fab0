package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

// AbilityFormula is one scripted hook pair of expr-lang expressions:
// EffectExpr is evaluated against the caster's stats to produce a
// numeric effect, and CostExpr produces a resource cost with every
// variable at zero (Cost receives no caster), so a homebrew author can
// add an ability without touching Go source.
type AbilityFormula struct {
	CostExpr   string
	EffectExpr string
}

// Homebrew is the alternate ruleset demonstrating pluggability: flat
// 2d10 attack rolls instead of a d20, flat damage with no critical
// doubling, and no ability cooldowns — abilities are reusable every
// turn but their cost/effect are computed from compiled expr-lang
// programs instead of hardcoded Go arithmetic.
type Homebrew struct {
	formulas  map[string]AbilityFormula
	compiled  map[string]*vm.Program
	compiledC map[string]*vm.Program
}

// abilityEnv is the variable set exposed to a compiled formula.
type abilityEnv struct {
	Strength   int `expr:"strength"`
	Dexterity  int `expr:"dexterity"`
	HPCurrent  int `expr:"hp_current"`
	HPMax      int `expr:"hp_max"`
}

func NewHomebrew(formulas map[string]AbilityFormula) (*Homebrew, error) {
	h := &Homebrew{
		formulas:  formulas,
		compiled:  map[string]*vm.Program{},
		compiledC: map[string]*vm.Program{},
	}
	for id, f := range formulas {
		if f.EffectExpr != "" {
			program, err := expr.Compile(f.EffectExpr, expr.Env(abilityEnv{}), expr.AsInt())
			if err != nil {
				return nil, fmt.Errorf("homebrew ability %q effect formula: %w", id, err)
			}
			h.compiled[id] = program
		}
		if f.CostExpr != "" {
			program, err := expr.Compile(f.CostExpr, expr.Env(abilityEnv{}), expr.AsInt())
			if err != nil {
				return nil, fmt.Errorf("homebrew ability %q cost formula: %w", id, err)
			}
			h.compiledC[id] = program
		}
	}
	return h, nil
}

func (h *Homebrew) ID() string          { return "homebrew" }
func (h *Homebrew) Name() string        { return "Homebrew" }
func (h *Homebrew) Version() string     { return "1.0.0" }
func (h *Homebrew) Description() string { return "2d10 attacks, flat damage, scripted ability formulas, no cooldowns." }
func (h *Homebrew) Author() string      { return "community" }

func (h *Homebrew) Combat() engine.CombatRules       { return homebrewCombat{} }
func (h *Homebrew) Abilities() engine.AbilityRules    { return homebrewAbilities{h} }
func (h *Homebrew) Conditions() engine.ConditionRules { return baselineConditions{} }
func (h *Homebrew) Movement() engine.MovementRules    { return baselineMovement{} }
func (h *Homebrew) Damage() engine.DamageRules        { return homebrewDamage{} }
func (h *Homebrew) Healing() engine.HealingRules      { return baselineHealing{} }

func envFor(e *engine.Entity) abilityEnv {
	str, dex := 10, 10
	if e.Stats.Strength != nil {
		str = *e.Stats.Strength
	}
	if e.Stats.Dexterity != nil {
		dex = *e.Stats.Dexterity
	}
	return abilityEnv{Strength: str, Dexterity: dex, HPCurrent: e.Stats.HPCurrent, HPMax: e.Stats.HPMax}
}

type homebrewCombat struct{}

func (homebrewCombat) AttackRoll(state *engine.GameState, attacker, target *engine.Entity) engine.AttackRollResult {
	raw := state.RNG.RollDice(2, 10, "attack_roll")
	return engine.AttackRollResult{Raw: raw, Disadvantage: false}
}

func (homebrewCombat) DamageRoll(state *engine.GameState, attacker, target *engine.Entity, weapon string, isCritical bool) int {
	return 5 + attacker.Stats.GetDamageBonus()
}

func (homebrewCombat) Initiative(state *engine.GameState, entity *engine.Entity) int {
	return state.RNG.RollDice(2, 10, "initiative")
}

func (homebrewCombat) AttackRange(attacker *engine.Entity, weapon string) int {
	return attacker.Stats.GetAttackRange()
}

func (homebrewCombat) CanAttack(state *engine.GameState, attacker, target *engine.Entity) bool {
	return attacker.Position.Chebyshev(target.Position) <= attacker.Stats.GetAttackRange()
}

func (homebrewCombat) AttackModifier(state *engine.GameState, entity *engine.Entity) int {
	return entity.Stats.GetAttackBonus()
}

func (homebrewCombat) ACModifier(state *engine.GameState, entity *engine.Entity) int { return 0 }

type homebrewAbilities struct {
	h *Homebrew
}

func (a homebrewAbilities) CanUse(state *engine.GameState, caster *engine.Entity, abilityID string, target *engine.Entity) bool {
	_, ok := a.h.formulas[abilityID]
	return ok
}

func (a homebrewAbilities) Resolve(state *engine.GameState, caster *engine.Entity, abilityID string, target *engine.Entity) ([]engine.Event, error) {
	program, ok := a.h.compiled[abilityID]
	if !ok {
		return nil, fmt.Errorf("homebrew: no effect formula for ability %q", abilityID)
	}
	result, err := expr.Run(program, envFor(caster))
	if err != nil {
		return nil, fmt.Errorf("homebrew: evaluating ability %q: %w", abilityID, err)
	}
	effect, _ := result.(int)
	if target != nil {
		target.Stats.HPCurrent -= effect
		if target.Stats.HPCurrent < 0 {
			target.Stats.HPCurrent = 0
		}
	}
	return nil, nil
}

// Cooldown is always zero: homebrew abilities have no cooldowns.
func (a homebrewAbilities) Cooldown(abilityID string) int { return 0 }

func (a homebrewAbilities) Cost(abilityID string) map[string]int {
	program, ok := a.h.compiledC[abilityID]
	if !ok {
		return nil
	}
	result, err := expr.Run(program, abilityEnv{})
	if err != nil {
		return nil
	}
	cost, _ := result.(int)
	return map[string]int{"resource": cost}
}

type homebrewDamage struct{}

func (homebrewDamage) Reduction(amount int, target *engine.Entity, damageType string) int { return amount }
func (homebrewDamage) Resistance(amount int, target *engine.Entity, damageType string) int { return amount }
func (homebrewDamage) Critical(base int, isCrit bool) int                                  { return base }
