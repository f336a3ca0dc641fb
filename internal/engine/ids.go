package engine

import (
	"strconv"

	"github.com/google/uuid"
)

// NewMatchID generates a fresh match identifier. Exercises google/uuid
// where string identity, not just an int counter, is part of the
// external contract.
func NewMatchID() string {
	return uuid.NewString()
}

// NewPendingEffectID generates a fresh queue-entry identifier, used to
// resume a cost-payment flow via PendingDecision.PendingEffectID.
func NewPendingEffectID() string {
	return uuid.NewString()
}

// NewBattleID derives a deterministic combat id from turn + attacker
// rather than a random uuid — ThisBattle-duration buffs need this to
// be stable and comparable, not merely unique.
func NewBattleID(turn, attackerInstanceID int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(battleIDSeed(turn, attackerInstanceID))).String()
}

func battleIDSeed(turn, attackerInstanceID int) string {
	return "battle:" + strconv.Itoa(turn) + ":" + strconv.Itoa(attackerInstanceID)
}
