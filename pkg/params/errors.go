package params

import "fmt"

// UnknownParameterError indicates a decoded name that is absent from the schema
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return "unknown parameter name: " + e.Name
}

// TypeMismatchError indicates a value of the wrong kind for its declared parameter
type TypeMismatchError struct {
	Name     string
	Expected Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %s: value is not a valid %s", e.Name, e.Expected)
}

// IndexOutOfRangeError indicates a categorical index beyond the declared variants
type IndexOutOfRangeError struct {
	Name  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("parameter %s: variant index %d out of range (%d variants)", e.Name, e.Index, e.Len)
}

// UnsupportedNestedError indicates a nested subspace where only flat
// subspaces are representable: encoding a space for the engine, or decoding
// a value against a schema that was never flattened.
type UnsupportedNestedError struct {
	Name string
}

func (e *UnsupportedNestedError) Error() string {
	return fmt.Sprintf("parameter %s: nested parameter space is not supported here; flatten the space first", e.Name)
}

// DuplicateNameError indicates two subspaces added under the same name at
// one level. It is used as a panic value: duplicate names are a
// configuration-authoring bug, not a runtime condition.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "duplicate parameter name: " + e.Name
}

// KeyCollisionError indicates two sibling nested spaces flattening to the
// same key. It is used as a panic value: collisions are a
// configuration-authoring bug, never silently resolved.
type KeyCollisionError struct {
	Key string
}

func (e *KeyCollisionError) Error() string {
	return "flattened key already present: " + e.Key
}
