package task

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a task.
type Status int

const (
	Pending Status = iota
	Done
	Canceled
)

// Wire values understood by the remote collection.
const (
	WirePending  = "PENDIENTE"
	WireDone     = "TERMINADO"
	WireCanceled = "CANCELADO"
)

// List identifies one of the three rendered lists.
type List int

const (
	PendingList List = iota
	CompletedList
	CanceledList
)

// Lists is every list in display order.
var Lists = []List{PendingList, CompletedList, CanceledList}

func (l List) String() string {
	switch l {
	case PendingList:
		return "pending"
	case CompletedList:
		return "completed"
	case CanceledList:
		return "canceled"
	}
	return fmt.Sprintf("List(%d)", int(l))
}

// List returns the list a task with this status belongs to.
func (s Status) List() List {
	switch s {
	case Done:
		return CompletedList
	case Canceled:
		return CanceledList
	default:
		return PendingList
	}
}

// Toggled returns the status reached by flipping the checkbox.
// Canceled is terminal and toggles to itself.
func (s Status) Toggled() Status {
	switch s {
	case Pending:
		return Done
	case Done:
		return Pending
	}
	return s
}

// CanCancel reports whether a task in this status may still be canceled.
func (s Status) CanCancel() bool {
	return s == Pending
}

// Wire returns the server-facing constant.
func (s Status) Wire() string {
	switch s {
	case Done:
		return WireDone
	case Canceled:
		return WireCanceled
	default:
		return WirePending
	}
}

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Done:
		return "done"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus maps a wire value to a Status.
func ParseStatus(v string) (Status, error) {
	switch v {
	case WirePending:
		return Pending, nil
	case WireDone:
		return Done, nil
	case WireCanceled:
		return Canceled, nil
	}
	return Pending, fmt.Errorf("unknown task status: %q", v)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Wire())
}

// StatusFromWire maps a wire value to a Status. Any value other than the
// pending and canceled constants is a completed task.
func StatusFromWire(v string) Status {
	if s, err := ParseStatus(v); err == nil {
		return s
	}
	return Done
}

// UnmarshalJSON accepts any value; see StatusFromWire.
func (s *Status) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		// not a string, so neither pending nor canceled
		*s = Done
		return nil
	}
	*s = StatusFromWire(v)
	return nil
}
