package custody

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/iov-one/custody/errors"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "create a switch" or "claim a switch".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx context.Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Deliverer interface {
	Deliver(ctx context.Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or logging, to many Handlers.
type Decorator interface {
	Check(ctx context.Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx context.Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router.
type Registry interface {
	// Handle assigns given handler to handle processing of every message
	// of provided type.
	// Using a message instead of a path string to avoid ambiguity. A
	// message is uniquely identified by its path.
	Handle(Msg, Handler)
}

// CheckResult captures any non-error abci result
// to make sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
	// GasPayment is the total fees for this tx (or other source of payment)
	GasPayment int64
}

// DeliverResult captures any non-error abci result
// to make sure people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// GasUsed is the amount of gas used by this transaction
	GasUsed int64
}

// Options are the app options.
// Each extension can look up its key and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode %q options: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements under the given key and returns a
// function that decodes one element per call. The end of the data is signalled
// with ErrEmpty. Calling the function again after that returns
// ErrState.
//
// Use it to load long lists of genesis entities without holding all of them
// in memory at once.
func (o Options) Stream(key string) (func(obj interface{}) error, error) {
	raw := o[key]
	if len(raw) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q options", key)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))

	var started, done bool
	return func(obj interface{}) error {
		if done {
			return errors.Wrap(errors.ErrState, "stream already consumed")
		}
		if !started {
			started = true
			tok, err := dec.Token()
			if err != nil {
				done = true
				return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", key, err)
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				done = true
				return errors.Wrapf(errors.ErrInput, "%q options must be a list", key)
			}
		}
		if !dec.More() {
			done = true
			return errors.Wrap(errors.ErrEmpty, "end of stream")
		}
		if err := dec.Decode(obj); err != nil {
			done = true
			if err == io.EOF {
				return errors.Wrap(errors.ErrEmpty, "end of stream")
			}
			return errors.Wrapf(errors.ErrInput, "cannot decode %q element: %s", key, err)
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
