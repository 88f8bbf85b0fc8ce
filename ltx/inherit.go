package ltx

import "xrf/xrerr"

// ResolveInheritance copies inherited keys from each section's parents
// (left to right, per §4.3's "[child]:a,b" grammar) down into the
// child, leaving a key already present in the child untouched. Parents
// are resolved depth-first so a parent's own parents are fully
// flattened before it donates keys onward, which is what produces the
// fixed point for multi-level ("diamond") inheritance in one pass.
// On return, every section's Parents list is empty — the testable
// property in spec §8 ("inherit(include(D)) contains no :parent
// clauses").
func ResolveInheritance(doc *Document) error {
	resolved := make(map[string]bool, len(doc.order))
	resolving := make(map[string]bool, len(doc.order))

	var resolve func(name string) error
	resolve = func(name string) error {
		if resolved[name] {
			return nil
		}
		if resolving[name] {
			return xrerr.New(xrerr.LtxParse, "inheritance cycle involving section "+name)
		}
		resolving[name] = true

		sec, ok := doc.sections[name]
		if !ok {
			resolving[name] = false
			return xrerr.New(xrerr.LtxParse, "unknown parent section "+name)
		}

		for _, parent := range sec.Parents {
			if err := resolve(parent); err != nil {
				resolving[name] = false
				return err
			}
			parentSec := doc.sections[parent]
			for _, k := range parentSec.keys {
				if sec.Has(k) {
					continue
				}
				v, _ := parentSec.Get(k)
				sec.Set(k, v)
			}
		}

		sec.Parents = nil
		resolving[name] = false
		resolved[name] = true
		return nil
	}

	for _, name := range doc.order {
		if err := resolve(name); err != nil {
			return err
		}
	}
	return nil
}
