package params

// Record is the engine-facing representation of one flattened subspace.
// Categorical variants are exposed as integer indices only; the underlying
// host values never cross the boundary.
type Record struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Lower    *float64 `json:"lower,omitempty"`
	Upper    *float64 `json:"upper,omitempty"`
	Log      bool     `json:"log,omitempty"`
	Variants []int    `json:"variants,omitempty"`
}

// Record type tags, mirroring the engine's subspace classes.
const (
	RecordReal        = "real"
	RecordInteger     = "integer"
	RecordBool        = "bool"
	RecordCategorical = "categorical"
)

// EncodeForEngine produces the external representation of the space: one
// record per top-level entry, in insertion order. The space must be flat;
// a remaining nested subspace yields *UnsupportedNestedError, since nested
// spaces are not representable to the engine.
func (s *Space) EncodeForEngine() ([]Record, error) {
	records := make([]Record, 0, len(s.names))

	for _, name := range s.names {
		sub := s.subspaces[name]
		switch sub.Kind() {
		case KindReal:
			lower, upper := sub.lower, sub.upper
			records = append(records, Record{
				Type:  RecordReal,
				Name:  name,
				Lower: &lower,
				Upper: &upper,
				Log:   sub.log,
			})
		case KindInteger:
			lower, upper := sub.lower, sub.upper
			records = append(records, Record{
				Type:  RecordInteger,
				Name:  name,
				Lower: &lower,
				Upper: &upper,
				Log:   sub.log,
			})
		case KindBool:
			records = append(records, Record{
				Type: RecordBool,
				Name: name,
			})
		case KindCategorical:
			indices := make([]int, len(sub.variants))
			for i := range sub.variants {
				indices[i] = i
			}
			records = append(records, Record{
				Type:     RecordCategorical,
				Name:     name,
				Variants: indices,
			})
		case KindNested:
			return nil, &UnsupportedNestedError{Name: name}
		}
	}

	return records, nil
}
