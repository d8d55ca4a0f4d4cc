// Package ordered provides insertion-ordered containers used by the store.
//
// [Set] is an ordered set of comparable keys and [Map] is an insertion-ordered
// map. Both give O(1) membership checks and deterministic iteration order;
// removals are O(n) in the container size.
//
// The containers are not safe for concurrent use.
package ordered
