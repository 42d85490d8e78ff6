//go:build !release

package logger

// Enabled reports whether records are emitted. Builds without the
// release tag are debug builds.
const Enabled = true
