package result

import "fmt"

// MisuseError reports a Result being used in a way that indicates a bug in
// the calling code. It is raised with panic, never returned.
type MisuseError struct {
	Object string // rendering of the offending Result
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Object)
}

func boolMisuse(kind, object string) *MisuseError {
	return &MisuseError{
		Object: object,
		Reason: kind + " object cannot be evaluated as a boolean. This is probably a bug" +
			" in your code. Make sure you are either explicitly checking for Err results" +
			" or using the Result.Unwrap() method",
	}
}
