package utilities

func Map[T any, U any](arr []T, fn func(T) U) []U {
	mapped := make([]U, len(arr))
	for i, x := range arr {
		mapped[i] = fn(x)
	}

	return mapped
}

func Filter[T any](arr []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(arr))
	for _, x := range arr {
		if keep(x) {
			filtered = append(filtered, x)
		}
	}

	return filtered
}
