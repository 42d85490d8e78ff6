package main

import (
	"os"

	"github.com/mordilloSan/helog/cmd"
)

// Usage:
//
//	helog emit --level warn --type network "connection reset"
//	printf 'a\nb\n' | helog pipe --type load
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
