package cmds

// Var defines name as a setter of the returned value, and "name." as its reset.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}))
	return &value
}

// Collect defines name as appending to the returned slice, and "name." as clearing it.
func Collect[T any](name string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	Define(name+".", Func(func() {
		value = nil
	}))
	return &value
}
