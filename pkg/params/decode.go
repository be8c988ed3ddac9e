package params

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// Decode converts an untyped configuration record into typed Params,
// using the space as schema.
//
// Every field of the record is looked up in the schema and coerced to the
// declared kind: real to float64, integer to uint32, bool to bool, and
// categorical to a variant index that is resolved against the declared
// variant list. Unknown names, kind mismatches, out-of-range indices, and
// nested schema entries abort the decode with the corresponding typed
// error; there are no partial results.
func Decode(raw *structpb.Struct, schema *Space) (Params, error) {
	fields := raw.GetFields()
	params := make(Params, len(fields))

	for name, value := range fields {
		decoded, err := decodeValue(name, value, schema)
		if err != nil {
			return nil, err
		}
		params[name] = decoded
	}

	return params, nil
}

// DecodeMap is a convenience wrapper over Decode for plain Go maps, e.g.
// values freshly unmarshalled from JSON. The map is normalized through
// structpb before the schema-directed decode.
func DecodeMap(raw map[string]any, schema *Space) (Params, error) {
	record, err := structpb.NewStruct(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize configuration record: %w", err)
	}
	return Decode(record, schema)
}

func decodeValue(name string, value *structpb.Value, schema *Space) (Value, error) {
	subspace, ok := schema.Get(name)
	if !ok {
		return Value{}, &UnknownParameterError{Name: name}
	}

	switch subspace.Kind() {
	case KindReal:
		number, ok := asNumber(value)
		if !ok {
			return Value{}, &TypeMismatchError{Name: name, Expected: KindReal}
		}
		return RealValue(number), nil

	case KindInteger:
		number, ok := asNumber(value)
		if !ok || !isUint32(number) {
			return Value{}, &TypeMismatchError{Name: name, Expected: KindInteger}
		}
		return IntegerValue(uint32(number)), nil

	case KindBool:
		boolean, ok := value.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return Value{}, &TypeMismatchError{Name: name, Expected: KindBool}
		}
		return BoolValue(boolean.BoolValue), nil

	case KindCategorical:
		number, ok := asNumber(value)
		if !ok || number != math.Trunc(number) || number < 0 {
			return Value{}, &TypeMismatchError{Name: name, Expected: KindCategorical}
		}
		variants := subspace.Variants()
		// The bound is checked on the float: converting first can
		// overflow int for huge wire values and wrap negative.
		if number >= float64(len(variants)) {
			index := math.MaxInt
			if number < float64(math.MaxInt) {
				index = int(number)
			}
			return Value{}, &IndexOutOfRangeError{Name: name, Index: index, Len: len(variants)}
		}
		index := int(number)
		return CategoricalValue(variants[index], index), nil

	case KindNested:
		// Decoding a flattened name against an unflattened schema is a
		// caller error, not a value error.
		return Value{}, &UnsupportedNestedError{Name: name}

	default:
		return Value{}, &TypeMismatchError{Name: name, Expected: subspace.Kind()}
	}
}

func asNumber(value *structpb.Value) (float64, bool) {
	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return number.NumberValue, true
}

func isUint32(n float64) bool {
	return n == math.Trunc(n) && n >= 0 && n <= math.MaxUint32
}
