// Package privilege reports whether the process runs elevated and builds the
// user-facing hints attached to permission failures.
package privilege

import "fmt"

// Hint returns the message shown when action failed for lack of privileges.
func Hint(action string) string {
	return fmt.Sprintf("Access Denied: %s to %s.", elevationAdvice, action)
}
