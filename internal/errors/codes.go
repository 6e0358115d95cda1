// Package errors defines machine-readable error codes shared across the
// rules engine and its callers.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// World definition errors
	CodeWorldCircuitIDDuplicate Code = "WORLD_CIRCUIT_ID_DUPLICATE"
	CodeWorldNodeIDDuplicate    Code = "WORLD_NODE_ID_DUPLICATE"
	CodeWorldLinkIDDuplicate    Code = "WORLD_LINK_ID_DUPLICATE"
	CodeWorldNoEntryNode        Code = "WORLD_NO_ENTRY_NODE"
	CodeWorldLinkOrphanEndpoint Code = "WORLD_LINK_ORPHAN_ENDPOINT"
	CodeWorldLinkSelfLoop       Code = "WORLD_LINK_SELF_LOOP"
	CodeWorldFailDieOutOfRange  Code = "WORLD_FAIL_DIE_OUT_OF_RANGE"
	CodeWorldMultipleFinalNodes Code = "WORLD_MULTIPLE_FINAL_NODES"
	CodeWorldSchemaInvalid      Code = "WORLD_SCHEMA_INVALID"

	// Run errors
	CodeRunNoEntryNode Code = "RUN_NO_ENTRY_NODE"

	// Hack rejections
	CodeHackNodeNotFound       Code = "HACK_NODE_NOT_FOUND"
	CodeHackNodeAlreadyHacked  Code = "HACK_NODE_ALREADY_HACKED"
	CodeHackNodeBlocked        Code = "HACK_NODE_BLOCKED"
	CodeHackCircuitBlocked     Code = "HACK_CIRCUIT_BLOCKED"
	CodeHackNodeInaccessible   Code = "HACK_NODE_INACCESSIBLE"
	CodeHackFailRollOutOfRange Code = "HACK_FAIL_ROLL_OUT_OF_RANGE"
	CodeHackNeedsSecondRoll    Code = "HACK_NEEDS_SECOND_ROLL"

	// Discovery rejections
	CodeDiscoverCircuitBlocked Code = "DISCOVER_CIRCUIT_BLOCKED"
	CodeDiscoverNodeNotFound   Code = "DISCOVER_NODE_NOT_FOUND"

	// Movement rejections
	CodeMoveCircuitBlocked     Code = "MOVE_CIRCUIT_BLOCKED"
	CodeMoveSamePosition       Code = "MOVE_SAME_POSITION"
	CodeMoveNodeNotFound       Code = "MOVE_NODE_NOT_FOUND"
	CodeMoveNodeInaccessible   Code = "MOVE_NODE_INACCESSIBLE"
	CodeMoveNodeBlocked        Code = "MOVE_NODE_BLOCKED"
	CodeMoveNoLink             Code = "MOVE_NO_LINK"
	CodeMoveAdvanceUnhacked    Code = "MOVE_ADVANCE_FROM_UNHACKED"
	CodeMoveTargetUndiscovered Code = "MOVE_TARGET_UNDISCOVERED"

	// Circuit switch rejections
	CodeSwitchCircuitNotFound Code = "SWITCH_CIRCUIT_NOT_FOUND"
	CodeSwitchSameCircuit     Code = "SWITCH_SAME_CIRCUIT"
	CodeSwitchCircuitBlocked  Code = "SWITCH_CIRCUIT_BLOCKED"
	CodeSwitchNoEntryNode     Code = "SWITCH_NO_ENTRY_NODE"

	// Storage errors
	CodeNotFound        Code = "NOT_FOUND"
	CodeVersionConflict Code = "VERSION_CONFLICT"

	// Dice errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"
)
