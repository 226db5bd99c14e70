package graph

import (
	"fmt"

	"github.com/plm/bridge-routing-engine/rterr"
)

func errInvalidPathf(format string, args ...interface{}) error {
	return rterr.InvalidPath(fmt.Sprintf(format, args...))
}

func errInvalidGraphf(format string, args ...interface{}) error {
	return rterr.InvalidGraph(fmt.Sprintf(format, args...))
}
