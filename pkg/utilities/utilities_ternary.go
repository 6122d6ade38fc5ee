package utilities

func Ternary[T any](cond bool, evalTrue, evalFalse T) T {
	if cond {
		return evalTrue
	}
	return evalFalse
}

// FirstNonZero returns the first value that is not the zero value of T.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
