package resolvers

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
)

type attackResolver struct{}

// Resolve implements ATTACK: roll to hit against the target's modified
// AC, then roll and apply damage on a hit. Every number that went into
// the outcome — raw roll, modifiers, effective AC, damage — is carried
// on the emitted event so a replay viewer never has to recompute them.
func (attackResolver) Resolve(state *engine.GameState, action engine.Action, deps engine.Deps) ([]engine.Event, []string) {
	attacker := state.Entities.ByID(action.AttackerID)
	if attacker == nil {
		return nil, []string{"ENTITY_NOT_FOUND"}
	}
	target := state.Entities.ByID(action.TargetID)
	if target == nil {
		return nil, []string{"ENTITY_NOT_FOUND"}
	}
	if attacker.IsDead() {
		return nil, []string{"DEAD_ENTITY"}
	}
	if target.IsDead() {
		return nil, []string{"TARGET_DEAD"}
	}
	if attacker.ID == target.ID {
		return nil, []string{"SELF_ATTACK"}
	}
	if state.Combat.Mode == engine.ModeCombat {
		if state.Combat.ActiveEntityID == nil || *state.Combat.ActiveEntityID != attacker.ID {
			return nil, []string{"NOT_YOUR_TURN"}
		}
	}
	if deps.Rules.Conditions().ShouldSkipTurn(attacker) {
		return nil, []string{"INVALID_ACTION"}
	}

	rules := deps.Rules.Combat()
	if !rules.CanAttack(state, attacker, target) {
		return nil, []string{"OUT_OF_RANGE"}
	}
	rangeLimit := rules.AttackRange(attacker, "")
	if attacker.Position.Chebyshev(target.Position) > rangeLimit {
		return nil, []string{"OUT_OF_RANGE"}
	}

	rollResult := rules.AttackRoll(state, attacker, target)
	attackModifier := rules.AttackModifier(state, attacker)
	acModifier := rules.ACModifier(state, target)
	effectiveAC := target.Stats.AC + acModifier
	attackTotal := rollResult.Raw + attackModifier

	hit := attackTotal >= effectiveAC
	damage := 0
	hpAfter := target.Stats.HPCurrent
	if hit {
		isCritical := rollResult.Raw == 20
		damage = rules.DamageRoll(state, attacker, target, "", isCritical)
		damage = deps.Rules.Damage().Reduction(damage, target, "physical")
		damage = deps.Rules.Damage().Resistance(damage, target, "physical")
		if damage < 0 {
			damage = 0
		}
		target.Stats.HPCurrent -= damage
		if target.Stats.HPCurrent < 0 {
			target.Stats.HPCurrent = 0
		}
		if target.Stats.HPCurrent == 0 {
			target.AddCondition(engine.CondDead)
		}
		hpAfter = target.Stats.HPCurrent
	}

	ev := engine.NewEvent(state, engine.EventAttackResolved, engine.AttackResolvedPayload{
		AttackerID:     attacker.ID,
		TargetID:       target.ID,
		RawRoll:        rollResult.Raw,
		AttackModifier: attackModifier,
		AttackRoll:     attackTotal,
		TargetBaseAC:   target.Stats.AC,
		ACModifier:     acModifier,
		EffectiveAC:    effectiveAC,
		Disadvantage:   rollResult.Disadvantage,
		Hit:            hit,
		Damage:         damage,
		TargetHPAfter:  hpAfter,
	})
	return []engine.Event{ev}, nil
}
