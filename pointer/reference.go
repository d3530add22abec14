package pointer

import "encoding/json"

// ThisIdentifier is the reserved pseudo-identifier denoting the region
// currently being resolved. It is never a legal user-chosen region name.
const ThisIdentifier = "$this"

// Ref names either a user-defined region/variable identifier or the
// builtin $this. Constructed via NewRef or This.
type Ref struct {
	identifier string
	isThis     bool
}

// This returns the reserved $this reference.
func This() Ref {
	return Ref{isThis: true}
}

// NewRef wraps a user-chosen identifier. Passing "$this" is equivalent
// to calling This().
func NewRef(identifier string) Ref {
	if identifier == ThisIdentifier {
		return This()
	}
	return Ref{identifier: identifier}
}

// IsThis reports whether the reference is the builtin $this.
func (r Ref) IsThis() bool {
	return r.isThis
}

// Identifier returns the referenced name. For $this it returns the
// literal string "$this", mirroring how it would appear in source.
func (r Ref) Identifier() string {
	if r.isThis {
		return ThisIdentifier
	}
	return r.identifier
}

func (r Ref) String() string {
	return r.Identifier()
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Identifier())
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = NewRef(s)
	return nil
}
