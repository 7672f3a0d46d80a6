// Package history records diagram mutations so they can be undone and
// redone.
package history

import (
	"flowdraw/internal/diagram"
	"flowdraw/internal/shape"
)

// Kind is the type of a recorded mutation.
type Kind int

const (
	Add Kind = iota
	Delete
	Move
	Resize
	PropertyChange
	ZOrderChange
	AddConnector
	DeleteConnector
	ConnectorChange
)

var kindNames = [...]string{
	Add:             "add",
	Delete:          "delete",
	Move:            "move",
	Resize:          "resize",
	PropertyChange:  "property",
	ZOrderChange:    "z-order",
	AddConnector:    "add connector",
	DeleteConnector: "delete connector",
	ConnectorChange: "connector property",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Record is one committed mutation. Shape snapshots are plain values, so a
// record stays valid whatever happens to the live shapes afterwards.
type Record struct {
	Kind Kind
	// Index is the shape index for shape records and the connector index for
	// connector records. For ZOrderChange it is the index before the move.
	Index int
	// ToIndex is the index after a ZOrderChange.
	ToIndex int

	// ID is the shape the record applies to. Replays look the shape up by
	// ID rather than trusting Index.
	ID     diagram.ShapeID
	Before shape.Shape
	After  shape.Shape

	// Connector records keep the connector itself and the shape indices it
	// was anchored to when the record was made.
	ConnBefore diagram.Connector
	ConnAfter  diagram.Connector
	Ends       [2]int

	// Removed holds the connectors a Delete took with the shape.
	Removed []diagram.RemovedConnector
}
