package dice

// Option pairs a value with its relative weight
type Option[T any] struct {
	Value  T
	Weight int
}

// TotalWeight sums the positive weights of the options
func TotalWeight[T any](options []Option[T]) int {
	total := 0
	for _, opt := range options {
		if opt.Weight > 0 {
			total += opt.Weight
		}
	}
	return total
}

// Pick chooses one option with probability proportional to its weight.
// It consumes exactly one Roll(1, total) so callers stay reproducible.
// Returns the zero value and false if no option has a positive weight.
func Pick[T any](r Roller, options []Option[T]) (T, bool) {
	var zero T
	total := TotalWeight(options)
	if total == 0 {
		return zero, false
	}

	roll := r.Roll(1, total) - 1
	for _, opt := range options {
		if opt.Weight <= 0 {
			continue
		}
		if roll < opt.Weight {
			return opt.Value, true
		}
		roll -= opt.Weight
	}
	return zero, false
}
