// Package rlimit raises the process file descriptor limit so servers
// holding many object readers do not trip the default soft limit.
package rlimit

// RaiseOpenFilesLimit raises the soft limit on open files to the hard
// limit and returns the resulting limit.  On platforms without
// rlimits it does nothing.
func RaiseOpenFilesLimit() (int, error) {
	return raiseOpenFilesLimit()
}
