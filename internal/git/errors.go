package git

import "fmt"

// RemoteExistsError is the cause AddRemote fails with when name is already
// configured for another URL.
type RemoteExistsError struct {
	Remote      string
	ExistingURL string
	NewURL      string
}

func (e *RemoteExistsError) Error() string {
	return fmt.Sprintf("remote %q points at %s, refusing to repoint it at %s", e.Remote, e.ExistingURL, e.NewURL)
}
