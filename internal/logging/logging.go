// package logging holds the root logger shared by the benchtools packages.
package logging

import (
	"log"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const verboseEnv = "BENCHTOOLS_VERBOSE"

var root logr.Logger

// The root logger.
func Log() logr.Logger { return root }

func init() {
	root = stdr.New(log.New(os.Stderr, "benchtools ", log.Ltime))
	if n, err := strconv.Atoi(os.Getenv(verboseEnv)); err == nil {
		stdr.SetVerbosity(n)
	}
}

// Floats wraps a vector so it is rendered compactly when logged.
type Floats []float64

func (f Floats) MarshalLog() any { return []float64(f) }
