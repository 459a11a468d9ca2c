package types

// Assignable reports whether a value of type from may be used where to is
// expected. Error and any are compatible with everything so that one
// failure does not cascade into more diagnostics.
func (in *Interner) Assignable(from, to TypeID) bool {
	if from == to {
		return true
	}
	src, ok1 := in.Lookup(from)
	dst, ok2 := in.Lookup(to)
	if !ok1 || !ok2 {
		return true
	}
	switch {
	case src.Kind == KindError || dst.Kind == KindError:
		return true
	case src.Kind == KindAny || dst.Kind == KindAny:
		return true
	case src.Kind == KindNull:
		return true
	}

	switch dst.Kind {
	case KindArray:
		return src.Kind == KindArray && in.Assignable(src.Elem, dst.Elem)
	case KindObject, KindResource, KindModule:
		if !src.Kind.IsObjectLike() {
			return false
		}
		return in.shapeAssignable(src, dst)
	default:
		return src.Kind == dst.Kind
	}
}

func (in *Interner) shapeAssignable(src, dst Type) bool {
	to := &in.shapes[dst.Shape]
	if dst.Shape == 0 {
		return true
	}
	from := &in.shapes[src.Shape]
	if src.Shape == 0 {
		// nothing is known about the source; accept
		return true
	}
	for _, p := range to.Props {
		sp, ok := from.Lookup(p.Name)
		if !ok {
			if p.Flags.Has(PropRequired) {
				return false
			}
			continue
		}
		if !in.Assignable(sp.Type, p.Type) {
			return false
		}
	}
	if !to.Open {
		for _, p := range from.Props {
			if _, ok := to.Lookup(p.Name); !ok {
				return false
			}
		}
	}
	return true
}
