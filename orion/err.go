package orion

import "fmt"

// Handle panics if err is not nil. Use it for errors that can only
// be caused by a programming mistake.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}

// recoverFatal turns a panic into an error. wgpu panics on errors,
// this lets us report them like any other error. Must be deferred directly.
func recoverFatal(err *error, desc string) {
	r := recover()
	if r == nil {
		return
	}

	if cause, ok := r.(error); ok {
		*err = fmt.Errorf("%s: %w", desc, cause)
		return
	}

	*err = fmt.Errorf("%s: %v", desc, r)
}
