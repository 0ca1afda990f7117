package custody

import (
	"reflect"
	"strings"

	"github.com/iov-one/custody/errors"
)

// Msg is message for the blockchain to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. This is used by the Router to locate
	// the proper Handler. Msg should be created alongside the Handler that
	// corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message content. It does
	// not look into the state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshal, as this almost always requires a pointer,
// and functions that only need to marshal bytes can use the Marshaller
// interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender
// (cryptographic signatures), and anything else needed to pass through
// middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. The message is validated before it is copied.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		if fields := errors.FieldNames(err); len(fields) > 0 {
			return errors.Wrapf(err, "invalid message %s", strings.Join(fields, ", "))
		}
		return errors.Wrap(err, "invalid message")
	}

	// Reflection is the only way to copy the message into a destination of
	// an unknown type.
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "invalid destination, must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dest.Elem().Set(src)
	return nil
}

// ExtractMsgFromSum will find the message in a transaction that carries a
// list of optional message fields, exactly one of which is set. It must be a
// pointer to a struct whose every field is a pointer to a Msg.
func ExtractMsgFromSum(sum interface{}) (Msg, error) {
	if sum == nil {
		return nil, errors.Wrap(errors.ErrInput, "message container is <nil>")
	}
	pval := reflect.ValueOf(sum)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", sum)
	}

	val := pval.Elem()
	var found Msg
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() != reflect.Ptr {
			return nil, errors.Wrapf(errors.ErrInput, "invalid message container field %q", val.Type().Field(i).Name)
		}
		if field.IsNil() {
			continue
		}
		msg, ok := field.Interface().(Msg)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "invalid message type: %T", field.Interface())
		}
		if found != nil {
			return nil, errors.Wrap(errors.ErrInput, "more than one message set")
		}
		found = msg
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrState, "message container is empty")
	}
	return found, nil
}
