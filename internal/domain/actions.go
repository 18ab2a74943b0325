// Package domain — pending-action payloads.
//
// The action Type field drives a tagged union: each ActionType has a
// statically known payload shape, and replay dispatch in the sync layer
// is a switch over this closed set. DecodeActionPayload is the single
// place where raw outbox JSON becomes a typed payload.
package domain

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ActionType enumerates the closed set of replayable operation kinds.
type ActionType string

const (
	// ActionAddToBetslip adds a bet to the user's betslip. The remote
	// effect is side-effecting; the backend is expected to deduplicate
	// by the action id carried as an idempotency key.
	ActionAddToBetslip ActionType = "add-to-betslip"

	// ActionUpdatePreference sets a single user preference to an
	// absolute value, which makes replay naturally idempotent.
	ActionUpdatePreference ActionType = "update-user-preference"

	// ActionRecordInteraction records a user interaction with a bet or
	// game card (viewed, dismissed, shared).
	ActionRecordInteraction ActionType = "record-interaction"
)

// ErrUnknownActionType is returned when an outbox row carries a type
// outside the closed ActionType set (e.g. written by a newer build).
var ErrUnknownActionType = errors.New("unknown action type")

// Valid reports whether t is a member of the closed action set.
func (t ActionType) Valid() bool {
	switch t {
	case ActionAddToBetslip, ActionUpdatePreference, ActionRecordInteraction:
		return true
	}
	return false
}

// AddToBetslipPayload is the payload for ActionAddToBetslip.
type AddToBetslipPayload struct {
	BetID  string          `json:"bet_id"`
	GameID string          `json:"game_id,omitempty"`
	Odds   decimal.Decimal `json:"odds"`
	Stake  decimal.Decimal `json:"stake,omitempty"`
}

// UpdatePreferencePayload is the payload for ActionUpdatePreference.
// Value is kept as raw JSON because preference values range from
// booleans to nested objects; the remote API owns their schema.
type UpdatePreferencePayload struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// RecordInteractionPayload is the payload for ActionRecordInteraction.
type RecordInteractionPayload struct {
	TargetID string `json:"target_id"`
	Kind     string `json:"kind"` // viewed | dismissed | shared
}

// EncodeActionPayload serializes a typed payload for storage in the
// outbox. The caller is responsible for pairing it with the right type.
func EncodeActionPayload(p any) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode action payload: %w", err)
	}
	return string(b), nil
}

// DecodeActionPayload parses raw outbox JSON into the payload type
// dictated by t. Unknown types return ErrUnknownActionType.
func DecodeActionPayload(t ActionType, raw string) (any, error) {
	switch t {
	case ActionAddToBetslip:
		var p AddToBetslipPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	case ActionUpdatePreference:
		var p UpdatePreferencePayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	case ActionRecordInteraction:
		var p RecordInteractionPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, t)
	}
}
