// Package exitcode defines the process exit statuses taskpad reports.
package exitcode

const (
	Success      = 0 // command completed
	UserError    = 1 // bad arguments, failed validation, unknown or ambiguous task
	AuthError    = 2 // missing or rejected Google credentials
	StorageError = 3 // the task collection could not be read or written
	RemoteError  = 4 // Google Tasks rejected a request during export
)

// Code pairs an exit status with a short description for help output.
type Code struct {
	Value       int
	Description string
}

var codes = []Code{
	{Success, "success"},
	{UserError, "invalid input or task not found"},
	{AuthError, "Google credentials missing or rejected"},
	{StorageError, "task storage unavailable or write failed"},
	{RemoteError, "Google Tasks request failed"},
}

// All returns every exit status in ascending order.
func All() []Code {
	out := make([]Code, len(codes))
	copy(out, codes)
	return out
}

// Describe returns the description for code, or "unknown".
func Describe(code int) string {
	for _, c := range codes {
		if c.Value == code {
			return c.Description
		}
	}
	return "unknown"
}
