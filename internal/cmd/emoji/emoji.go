// Package emoji provides the status symbols printed by gallery commands.
package emoji

const (
	// Success marks a completed operation or a valid collection.
	Success = "✓"

	// Error marks a failed operation or a collection with rejected records.
	Error = "✗"

	// Stop marks a shutdown in progress.
	Stop = "■"

	// Warning marks a skipped item, such as an entry name that cannot be
	// used as a file name.
	Warning = "!"

	// Info marks informational lines such as listen addresses.
	Info = "i"
)
