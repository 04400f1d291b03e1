package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Skip      bool
	Map       bool
	Container bool
}

var d *debug

func init() {
	d = &debug{}
	d.Skip = boolEnv("AVROIDX_DEBUG_SKIP")
	d.Map = boolEnv("AVROIDX_DEBUG_MAP")
	d.Container = boolEnv("AVROIDX_DEBUG_CONTAINER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Skip() bool {
	return d.Skip
}
func Map() bool {
	return d.Map
}
func Container() bool {
	return d.Container
}

// Logf writes a trace line to stderr. A trailing newline is added
// when msg does not end with one.
func Logf(msg string, args ...any) {
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
