package common

import (
	"slices"
	"strings"

	"github.com/ChainSafe/mipsdec/asmparser/mips"
	"github.com/ChainSafe/mipsdec/profile"
)

// ProgramEntrypoint returns the predicate matching the segments a program
// starts executing from. Profile entrypoints take precedence over the defaults.
func ProgramEntrypoint(prof *profile.VMProfile) func(function string) bool {
	if len(prof.Entrypoints) > 0 {
		return func(function string) bool {
			return slices.Contains(prof.Entrypoints, function)
		}
	}
	switch prof.GOARCH {
	case "mips", "mipsle":
		return func(function string) bool {
			return function == mips.EntryLabel || // raw images
				function == "runtime.rt0_go" || // start point of a go program
				function == "main.main" ||
				strings.Contains(function, ".init.") || // all init functions
				strings.HasSuffix(function, ".init") // vars
		}
	}
	return func(function string) bool {
		return false
	}
}
