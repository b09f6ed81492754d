package domain

// ChangeKind identifies which balance aggregate changed.
type ChangeKind string

const (
	ChangeKindClient   ChangeKind = "client"
	ChangeKindRegister ChangeKind = "cash_register"
)

// Event types published on the change channel
const (
	EventTypeEntryCreated    = "entry.created"
	EventTypeEntryUpdated    = "entry.updated"
	EventTypeEntryDeleted    = "entry.deleted"
	EventTypeTransferCreated = "transfer.created"
)

// BalanceChangedEvent is the payload sent to the change-notification sink
// after a committed balance mutation.
type BalanceChangedEvent struct {
	Kind ChangeKind `json:"kind"`
	ID   string     `json:"id"`
	Type string     `json:"type"`
}
