package paramxml

import "strings"

// windowsStem extracts the file-name stem (no directory, no
// extension) from a path that may use either Windows or POSIX
// separators. The engine always reports paths in Windows form
// (mqparams.py used pathlib.PureWindowsPath for exactly this reason),
// but test fixtures on this platform are easier to write with POSIX
// separators, so both are accepted.
func windowsStem(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i > 0 {
		path = path[:i]
	}
	return path
}
