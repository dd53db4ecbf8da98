// Package dictz provides persistent, insertion-ordered associative
// containers with automatically maintained reverse indexes.
//
//   - BiDict: a many-to-one bidirectional map. Each key maps to one value;
//     GetReverse finds every key bound to a value.
//   - MultiDict: a one-to-many map from keys to sets of values.
//   - MultiBiDict: a many-to-many bidirectional multimap, combining both.
//
// All three are value types: every mutating operation returns a new
// container and leaves its receiver valid and unchanged, so containers may
// be shared across goroutines and retained across versions without
// coordination.
//
// Two normalization rules hold everywhere. A reverse index contains exactly
// the values reachable from the forward index, and no index ever stores an
// empty set: absence of an entry is the only representation of "no
// elements". Set-combination operations (Union, Intersect, Diff) act on
// forward state and are left-biased on key collision; containers with a
// reverse index rebuild it from the resulting forward state.
//
// Keys and values require only Go equality (`comparable`); no ordering or
// hashing capability is assumed, and iteration follows insertion order: the
// position of a key is fixed when it is first introduced.
package dictz
