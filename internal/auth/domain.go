package auth

// User represents a seeded account. Accounts are created at initialization
// and never mutated or deleted by normal operation.
type User struct {
	Username string
	Secret   string
	Role     string
}
