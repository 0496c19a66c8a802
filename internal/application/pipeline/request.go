// Package pipeline dispatches typed requests through an ordered chain of
// behaviors: validation, logging and, for commands, a database transaction.
package pipeline

// Kind separates mutating requests from read-only ones
type Kind int

const (
	// KindQuery is a read-only request
	KindQuery Kind = iota
	// KindCommand is a mutating request; it runs inside a transaction
	KindCommand
)

// String returns "command" or "query"
func (k Kind) String() string {
	if k == KindCommand {
		return "command"
	}
	return "query"
}

// Request is implemented by every command and query
type Request interface {
	// RequestName identifies the operation in logs and metrics
	RequestName() string
	// RequestKind declares whether the request mutates state
	RequestKind() Kind
}

// Command can be embedded to declare a request as a command
type Command struct{}

// RequestKind implements Request
func (Command) RequestKind() Kind { return KindCommand }

// Query can be embedded to declare a request as a query
type Query struct{}

// RequestKind implements Request
func (Query) RequestKind() Kind { return KindQuery }
