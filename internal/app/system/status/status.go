// internal/app/system/status/status.go

// Package status holds the shared record states used by courses,
// groups, and staff accounts.
package status

const (
	Active   = "active"
	Inactive = "inactive"
)

// Valid reports whether s is a recognized record status.
func Valid(s string) bool {
	return s == Active || s == Inactive
}
