package filters

// Number is the set of types a Range can bound.
type Number interface {
	~int | ~int64 | ~float64
}

// Range is an optional closed interval. Either end may be missing.
type Range[T Number] struct {
	min *T
	max *T
}

// Min returns the lower bound and whether it is set.
func (r Range[T]) Min() (T, bool) {
	if r.min == nil {
		var zero T
		return zero, false
	}
	return *r.min, true
}

// Max returns the upper bound and whether it is set.
func (r Range[T]) Max() (T, bool) {
	if r.max == nil {
		var zero T
		return zero, false
	}
	return *r.max, true
}

// IsSet reports whether at least one bound is present.
func (r Range[T]) IsSet() bool {
	return r.min != nil || r.max != nil
}

func (r Range[T]) withMin(v T) Range[T] {
	r.min = &v
	return r
}

func (r Range[T]) withMax(v T) Range[T] {
	r.max = &v
	return r
}
