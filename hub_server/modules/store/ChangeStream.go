package store

import "context"

// IChangeStream is the subset of *mongo.ChangeStream the watcher consumes.
type IChangeStream interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}
