package enum

// SessionStatus represents the lifecycle state of a POS session (shift).
// A session opens OPEN and terminates CLOSED; there are no other transitions.
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "OPEN"
	SessionStatusClosed SessionStatus = "CLOSED"
)

func (s SessionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known session status
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusOpen, SessionStatusClosed:
		return true
	}
	return false
}
