package logger

import (
	"runtime"
	"strings"
)

// CallSite identifies where a log call was made.
type CallSite struct {
	// Function is the calling function in package.Function form.
	Function string
	// File is the source file path reported by the runtime.
	File string
	// Line is the line number within File.
	Line int
}

// Caller returns the call site skip frames above the caller of Caller.
// Caller(0) describes the function that called Caller.
func Caller(skip int) CallSite {
	return callerSite(skip + 2)
}

// callerSite returns call site information at the specified stack depth.
func callerSite(depth int) CallSite {
	pc, file, line, ok := runtime.Caller(depth)
	if !ok {
		return CallSite{Function: "unknown", File: "unknown"}
	}
	site := CallSite{Function: "unknown", File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = shortFuncName(fn.Name())
	}
	return site
}

// shortFuncName strips the package path, keeping package.Function.
func shortFuncName(full string) string {
	lastSlash := strings.LastIndex(full, "/")
	if lastSlash >= 0 && lastSlash+1 < len(full) {
		return full[lastSlash+1:]
	}
	return full
}
