package error

import (
	"errors"
	"fmt"
)

// Rule codes of the placement and turn protocols.
const (
	RuleInvalidCoordinate uint8 = iota
	RuleOutOfBounds
	RuleOverlap
	RuleAlreadyPlaced
	RuleNullShipPresent
	RuleCommitmentMismatch
	RuleReplayedTarget
	RuleMalformedTarget
)

var ruleNames = map[uint8]string{
	RuleInvalidCoordinate:  "InvalidCoordinate",
	RuleOutOfBounds:        "OutOfBounds",
	RuleOverlap:            "Overlap",
	RuleAlreadyPlaced:      "AlreadyPlaced",
	RuleNullShipPresent:    "NullShipPresent",
	RuleCommitmentMismatch: "CommitmentMismatch",
	RuleReplayedTarget:     "ReplayedTarget",
	RuleMalformedTarget:    "MalformedTarget",
}

// RuleErr is a violated precondition of a protocol input. Two RuleErr
// values match under errors.Is when they carry the same rule, whatever
// their description.
type RuleErr struct {
	rule uint8
	msg  string
	desc string
}

func NewRuleErr(rule uint8, msg string) RuleErr {
	return RuleErr{rule: rule, msg: msg}
}

func (r RuleErr) AddDesc(desc string) RuleErr {
	r.desc = desc
	return r
}

func (r RuleErr) Error() string {
	if r.desc == "" {
		return r.msg
	}
	return fmt.Sprintf("%s: %s", r.msg, r.desc)
}

func (r RuleErr) Rule() uint8 {
	return r.rule
}

// RuleName is the stable name of the rule, used as a metric label.
func (r RuleErr) RuleName() string {
	return RuleName(r.rule)
}

func (r RuleErr) Is(target error) bool {
	t, ok := target.(RuleErr)
	return ok && t.rule == r.rule
}

func RuleName(rule uint8) string {
	name, prs := ruleNames[rule]
	if !prs {
		return "Unknown"
	}
	return name
}

var (
	ErrInvalidCoordinate  = NewRuleErr(RuleInvalidCoordinate, "coordinate must be less than or equal to 9")
	ErrOutOfBounds        = NewRuleErr(RuleOutOfBounds, "ship is out of bounds")
	ErrOverlap            = NewRuleErr(RuleOverlap, "ship is overlapping with another ship")
	ErrAlreadyPlaced      = NewRuleErr(RuleAlreadyPlaced, "ship already added")
	ErrNullShipPresent    = NewRuleErr(RuleNullShipPresent, "at least one ship is null")
	ErrCommitmentMismatch = NewRuleErr(RuleCommitmentMismatch, "board must match the previously committed board")
	ErrReplayedTarget     = NewRuleErr(RuleReplayedTarget, "target must not match any previous hits")
	ErrMalformedTarget    = NewRuleErr(RuleMalformedTarget, "target coordinates must be less than or equal to 9")
)

// A proof that is well formed but does not check against its verification
// key. Never retried; the session that received it must end.
var ErrVerificationFailed = errors.New("proof verification failed")

// AsRuleErr reports the RuleErr inside err, if any.
func AsRuleErr(err error) (RuleErr, bool) {
	var re RuleErr
	if errors.As(err, &re) {
		return re, true
	}
	return RuleErr{}, false
}

func ErrCoordinateOutOfGrid(x, y uint8) error {
	return ErrInvalidCoordinate.AddDesc(fmt.Sprintf("x: %d\ty: %d", x, y))
}

func ErrShipOutOfBounds(ship string, end uint8) error {
	return ErrOutOfBounds.AddDesc(fmt.Sprintf("%s ends at %d", ship, end))
}

func ErrShipOverlapping(ship string) error {
	return ErrOverlap.AddDesc(ship)
}

func ErrShipAlreadyPlaced(ship string) error {
	return ErrAlreadyPlaced.AddDesc(ship)
}

func ErrShipsMissing(ships []string) error {
	return ErrNullShipPresent.AddDesc(fmt.Sprintf("missing: %v", ships))
}

func ErrTargetReplayed(x, y uint8) error {
	return ErrReplayedTarget.AddDesc(fmt.Sprintf("x: %d\ty: %d", x, y))
}

func ErrTargetMalformed(x, y uint8) error {
	return ErrMalformedTarget.AddDesc(fmt.Sprintf("x: %d\ty: %d", x, y))
}

func ErrPreviousHitsMalformed(hits string) error {
	return ErrMalformedTarget.AddDesc("previous hits outside the grid: " + hits)
}

func ErrShipTypeUnknown(t uint8) error {
	return ErrOutOfBounds.AddDesc(fmt.Sprintf("unknown ship type: %d", t))
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("player with this uuid does not exist, uuid: %s", playerUuid)
}

func ErrNotPlayerTurn(playerUuid string) error {
	return fmt.Errorf("it is not this player's turn, uuid: %s", playerUuid)
}

func ErrGameFinished(gameUuid string) error {
	return fmt.Errorf("game is already finished, uuid: %s", gameUuid)
}

func ErrGameNotStarted(gameUuid string) error {
	return fmt.Errorf("boards are not committed yet, uuid: %s", gameUuid)
}

func ErrGameAlreadyStarted(gameUuid string) error {
	return fmt.Errorf("boards are already committed, uuid: %s", gameUuid)
}

func ErrUnknownCircuit(circuit string) error {
	return fmt.Errorf("unknown circuit: %s", circuit)
}

func ErrCircuitNotCompiled(circuit string) error {
	return fmt.Errorf("circuit is not compiled: %s", circuit)
}

func ErrGameNotFull(gameUuid string) error {
	return fmt.Errorf("game needs two players before committing boards, uuid: %s", gameUuid)
}
