package domain

import "fmt"

// Role represents a user role in the system. The set is closed: policy
// checks switch exhaustively over these values, so adding a role forces a
// review of every access decision.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleBaseCommander    Role = "base_commander"
	RoleLogisticsOfficer Role = "logistics_officer"
)

// ParseRole validates a raw role string from a request body.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: invalid role %q", ErrInvalidInput, s)
}

// TransferStatus represents the lifecycle state of a transfer
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// ParseTransferStatus validates a raw transfer status string
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case TransferPending, TransferInTransit, TransferCompleted, TransferCancelled:
		return TransferStatus(s), nil
	}
	return "", fmt.Errorf("%w: invalid transfer status %q", ErrInvalidInput, s)
}

// Terminal reports whether no further transition is possible
func (s TransferStatus) Terminal() bool {
	return s == TransferCompleted || s == TransferCancelled
}

// CanTransition reports whether the transfer state machine allows moving
// from s to next. The forward path is pending -> in_transit -> completed;
// cancellation is reachable from any non-terminal state.
func (s TransferStatus) CanTransition(next TransferStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case TransferInTransit:
		return s == TransferPending
	case TransferCompleted:
		return s == TransferInTransit
	case TransferCancelled:
		return true
	}
	return false
}

// AssetStatus represents the state of a physical asset
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetAssigned    AssetStatus = "assigned"
	AssetMaintenance AssetStatus = "maintenance"
	AssetExpended    AssetStatus = "expended"
)

// ParseAssetStatus validates a raw asset status string
func ParseAssetStatus(s string) (AssetStatus, error) {
	switch AssetStatus(s) {
	case AssetAvailable, AssetAssigned, AssetMaintenance, AssetExpended:
		return AssetStatus(s), nil
	}
	return "", fmt.Errorf("%w: invalid asset status %q", ErrInvalidInput, s)
}

// AssignmentStatus represents the state of an assignment
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentReturned AssignmentStatus = "returned"
	AssignmentLost     AssignmentStatus = "lost"
	AssignmentDamaged  AssignmentStatus = "damaged"
)

// ParseAssignmentStatus validates a raw assignment status string
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	switch AssignmentStatus(s) {
	case AssignmentActive, AssignmentReturned, AssignmentLost, AssignmentDamaged:
		return AssignmentStatus(s), nil
	}
	return "", fmt.Errorf("%w: invalid assignment status %q", ErrInvalidInput, s)
}

// ExpenditureType classifies why equipment was consumed
type ExpenditureType string

const (
	ExpenditureTraining    ExpenditureType = "training"
	ExpenditureOperations  ExpenditureType = "operations"
	ExpenditureMaintenance ExpenditureType = "maintenance"
	ExpenditureLoss        ExpenditureType = "loss"
)

// ParseExpenditureType validates a raw expenditure type string
func ParseExpenditureType(s string) (ExpenditureType, error) {
	switch ExpenditureType(s) {
	case ExpenditureTraining, ExpenditureOperations, ExpenditureMaintenance, ExpenditureLoss:
		return ExpenditureType(s), nil
	}
	return "", fmt.Errorf("%w: invalid expenditure type %q", ErrInvalidInput, s)
}
