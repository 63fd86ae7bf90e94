package model

// Status is the current lifecycle state of a PurchaseRequest.
type Status string

const (
	StatusPending             Status = "PENDING"
	StatusApproved            Status = "APPROVED"
	StatusOrdered             Status = "ORDERED"
	StatusReceived            Status = "RECEIVED"
	StatusReceivedInWarehouse Status = "RECEIVED_IN_WAREHOUSE"
	StatusCanceled            Status = "CANCELED"
)

// PendingAction marks a proposed destructive change awaiting a second actor.
type PendingAction string

const (
	PendingActionNone         PendingAction = "NONE"
	PendingActionCancellation PendingAction = "CANCELLATION_REQUEST"
	PendingActionUnapproval   PendingAction = "UNAPPROVAL_REQUEST"
)

// statusEdges is the legal forward-transition table. Cancellation is only
// reachable from pending/approved/ordered; once goods are received the request
// can no longer be canceled. The reopen workflow is the single exception that
// moves a request backward, and it bypasses this table on purpose.
var statusEdges = map[Status][]Status{
	StatusPending:             {StatusApproved, StatusCanceled},
	StatusApproved:            {StatusOrdered, StatusCanceled},
	StatusOrdered:             {StatusReceived, StatusApproved, StatusCanceled},
	StatusReceived:            {StatusReceivedInWarehouse},
	StatusReceivedInWarehouse: {},
	StatusCanceled:            {},
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	_, ok := statusEdges[s]
	return ok
}

// CanTransition reports whether the edge from → to is legal given the
// warehouse-reception flag. RECEIVED_IN_WAREHOUSE only exists as a state when
// the flag is on.
func CanTransition(from, to Status, useWarehouseReception bool) bool {
	if to == StatusReceivedInWarehouse && !useWarehouseReception {
		return false
	}
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EffectiveTerminalStatus returns the status beyond which no forward
// transition exists: RECEIVED_IN_WAREHOUSE when the warehouse-reception step
// is enabled, RECEIVED otherwise. Every terminal check in the engine goes
// through this function.
func EffectiveTerminalStatus(useWarehouseReception bool) Status {
	if useWarehouseReception {
		return StatusReceivedInWarehouse
	}
	return StatusReceived
}

// IsTerminal reports whether s is the effective terminal status under the
// given warehouse-reception flag.
func (s Status) IsTerminal(useWarehouseReception bool) bool {
	return s == EffectiveTerminalStatus(useWarehouseReception)
}

// StatusMeta holds the display attributes for a status. The engine owns this
// table so every presentation layer reads the same labels and colors.
type StatusMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusMeta = map[Status]StatusMeta{
	StatusPending:             {Label: "Pending", Color: "#9e9e9e"},
	StatusApproved:            {Label: "Approved", Color: "#2196f3"},
	StatusOrdered:             {Label: "Ordered", Color: "#ff9800"},
	StatusReceived:            {Label: "Received", Color: "#4caf50"},
	StatusReceivedInWarehouse: {Label: "Received in warehouse", Color: "#009688"},
	StatusCanceled:            {Label: "Canceled", Color: "#f44336"},
}

// MetaFor returns the display metadata for s.
func MetaFor(s Status) StatusMeta {
	return statusMeta[s]
}
