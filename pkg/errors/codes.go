package errors

// Code is the closed set of error codes the engine ever surfaces across
// its API boundary. No other code is ever returned by a resolver or
// apply_action; the validator reports its own invariant codes.
type Code string

const (
	CodeInvalidAction  Code = "INVALID_ACTION"
	CodeEntityNotFound Code = "ENTITY_NOT_FOUND"
	CodeTargetDead     Code = "TARGET_DEAD"
	CodeDeadEntity     Code = "DEAD_ENTITY"
	CodeSelfAttack     Code = "SELF_ATTACK"
	CodeOutOfRange     Code = "OUT_OF_RANGE"
	CodeBlockedCell    Code = "BLOCKED_CELL"
	CodeDiagonalStep   Code = "DIAGONAL_STEP"
	CodeOverlap        Code = "OVERLAP"
	CodeNotYourTurn    Code = "NOT_YOUR_TURN"
	CodeCombatAlready  Code = "COMBAT_ALREADY"
	CodeOutOfBounds    Code = "OUT_OF_BOUNDS"
)

// Messages gives a human-readable default for every closed code.
var Messages = map[Code]string{
	CodeInvalidAction:  "action is malformed or unknown",
	CodeEntityNotFound: "referenced entity does not exist",
	CodeTargetDead:     "target is already dead",
	CodeDeadEntity:     "entity is dead and cannot act",
	CodeSelfAttack:     "attacker cannot target itself",
	CodeOutOfRange:     "target or destination is out of range",
	CodeBlockedCell:    "cell is blocked by terrain",
	CodeDiagonalStep:   "path contains a diagonal step",
	CodeOverlap:        "cell is occupied by another entity",
	CodeNotYourTurn:    "entity is not the active combatant",
	CodeCombatAlready:  "combat is already in progress",
	CodeOutOfBounds:    "position is outside map bounds",
}

// Message returns the default message for a code, falling back to the
// code itself if it is somehow unmapped.
func Message(code Code) string {
	if msg, ok := Messages[code]; ok {
		return msg
	}
	return string(code)
}

// RuleError is a single structured error record: a closed code plus a
// message, for callers that branch on Code without string matching.
// Resolvers report rejection codes as plain strings and the validator
// uses its own ValidationError; neither returns a RuleError.
type RuleError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e RuleError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a RuleError with the code's default message.
func New(code Code) RuleError {
	return RuleError{Code: code, Message: Message(code)}
}

// Newf builds a RuleError with a custom message.
func Newf(code Code, message string) RuleError {
	return RuleError{Code: code, Message: message}
}
