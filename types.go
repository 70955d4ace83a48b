package wrappederror

// ErrorType is a classification tag for a WrappedError. Types are
// compared by identity: two *ErrorType values match only when they are
// the same pointer, so applications should define their types once and
// share them:
//
//	var ErrCustomerNotFound = wrappederror.NewType(
//	    "CustomerNotFound", "customer could not be found")
//
// The library never inspects Name or Message beyond reporting them.
// A type is a record shared by every node built with it: set its fields
// once, before first use, and never change them afterwards. Nodes read
// the fields of their type when reporting, and a type is validated only
// when a node is built with it.
//
// An *ErrorType is also an error, which makes it usable as an errors.Is
// target for any error tree containing a node of that type:
//
//	if errors.Is(err, ErrCustomerNotFound) {
//	    // ...
//	}
type ErrorType struct {
	Name    string
	Message string
}

var _ error = (*ErrorType)(nil) // Assert interface implementation.

// Well-known error types.
var (
	// UndefinedError is assigned to nodes created without a type.
	UndefinedError = &ErrorType{
		Name:    "UndefinedError",
		Message: "Undefined error",
	}

	// InvalidTypeDefinition is the type of the node returned in place of
	// a node whose type is missing a name or a message. Its data holds
	// the rejected type under the "giventype" key.
	InvalidTypeDefinition = &ErrorType{
		Name:    "Invalid error type definition",
		Message: "Error type definition should be an object defined with at least a name and a message",
	}
)

// NewType returns a new error type. The type is not validated until it
// is used to build a node; see Validate.
func NewType(name, message string) *ErrorType {
	return &ErrorType{Name: name, Message: message}
}

// Error returns the type's message.
func (t *ErrorType) Error() string {
	if t == nil {
		return "<nil>"
	}
	return t.Message
}

// String returns the type's name.
func (t *ErrorType) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// Validate returns nil if the type has both a name and a message.
// Otherwise it returns an InvalidTypeDefinition node carrying t.
func (t *ErrorType) Validate() error {
	if t.valid() {
		return nil
	}
	return invalidType(t, getStack(1))
}

func (t *ErrorType) valid() bool {
	return t != nil && t.Name != "" && t.Message != ""
}

// invalidType builds the node reporting a malformed type. It bypasses
// validation so that a malformed InvalidTypeDefinition cannot recurse.
func invalidType(given *ErrorType, ff frames) *WrappedError {
	return &WrappedError{
		typ:    InvalidTypeDefinition,
		data:   map[string]interface{}{KeyGivenType: given},
		frames: ff,
	}
}
