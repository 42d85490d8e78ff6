//go:build release

package logger

// Enabled reports whether records are emitted. The release tag compiles
// the emission path out.
const Enabled = false
