package shared

// Principal identifies the acting user within one logged-in session. It is
// passed explicitly to every operation that needs the actor; there is no
// ambient process-wide identity.
type Principal struct {
	Username string
	Role     string
}
