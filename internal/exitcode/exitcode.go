// Package exitcode defines exit codes for the CLI.
package exitcode

import "taskboard/internal/store"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a store/network error.
	BackendError = 3
)

// ForStoreError classifies a failed store operation.
func ForStoreError(err error) int {
	switch {
	case err == nil:
		return Success
	case store.IsAuth(err):
		return AuthError
	}
	return BackendError
}
