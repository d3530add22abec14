package cursor

import "github.com/runtimeverification/ethdebug-go/pointer"

type namedRegion struct {
	name   string
	region Region
}

// Regions is the immutable ordered name→resolved-region mapping of
// §3/§4.6, plus a distinguished $this slot. By-name lookup returns the
// most recently appended entry; earlier same-named entries are
// shadowed, never removed, so the save-time order is preserved for any
// caller that wants to walk the full history.
type Regions struct {
	entries []namedRegion
	this    *Region
}

// Empty is the regions index at the start of a Dereference call.
func Empty() Regions {
	return Regions{}
}

// Append returns a new index with region appended, named per its Name
// field (or "" if unnamed — unnamed regions are not addressable by
// Lookup, but still occupy a slot in traversal-order history).
func (r Regions) Append(region Region) Regions {
	entries := make([]namedRegion, len(r.entries), len(r.entries)+1)
	copy(entries, r.entries)
	entries = append(entries, namedRegion{name: region.Named(), region: region})
	return Regions{entries: entries, this: r.this}
}

// WithThis returns a new index with the $this slot set to region. Used
// exclusively by package resolve while fixed-point-iterating a raw
// region's expressions.
func (r Regions) WithThis(region Region) Regions {
	cp := region
	return Regions{entries: r.entries, this: &cp}
}

// Lookup resolves a reference: $this returns the distinguished slot (if
// set), anything else searches entries from most to least recent.
func (r Regions) Lookup(ref pointer.Ref) (Region, bool) {
	if ref.IsThis() {
		if r.this == nil {
			return Region{}, false
		}
		return *r.this, true
	}
	name := ref.Identifier()
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].name == name {
			return r.entries[i].region, true
		}
	}
	return Region{}, false
}
