package service

// Embedded lists keep the most recent record first.

func prepend[T any](list []T, item T) []T {
	return append([]T{item}, list...)
}

func indexOf[T any](list []T, match func(T) bool) int {
	for i, item := range list {
		if match(item) {
			return i
		}
	}
	return -1
}

// removeAt returns list without element i. The rest keep their order.
func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
