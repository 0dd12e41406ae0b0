// Package typesys holds the internal type representation produced from
// OpenAPI schemas.
//
// A [Store] hash-conses types: each constructor builds a canonical
// structural key from the kind and the ids of already-interned children, so
// structurally equal types share one [Type] handle and compare equal with
// ==. Deep equality is therefore a pointer comparison.
//
// [Store.Simplify] rewrites a type into canonical form (sorted, deduplicated
// unions and intersections, with all-object intersections merged) and
// [Compare] is the deterministic order used for sorting.
//
//	s := typesys.NewStore()
//	u := s.Or(s.String(), s.Number(), s.String())
//	fmt.Println(s.Simplify(u)) // number | string
package typesys
