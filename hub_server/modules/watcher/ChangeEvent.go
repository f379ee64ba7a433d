package watcher

import "go.mongodb.org/mongo-driver/bson"

type OpType int

const (
	OpUnknown OpType = iota
	OpInsert
	OpUpdate
	OpDelete
)

func (o OpType) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ChangeEvent is the slice of a change stream document the watcher cares
// about.
type ChangeEvent struct {
	OperationType string   `bson:"operationType"`
	FullDocument  bson.Raw `bson:"fullDocument"`
}

func (e *ChangeEvent) Op() OpType {
	switch e.OperationType {
	case "insert":
		return OpInsert
	case "update", "replace":
		return OpUpdate
	case "delete":
		return OpDelete
	default:
		return OpUnknown
	}
}
