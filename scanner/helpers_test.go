package scanner

import (
	"io"
	"testing"

	"github.com/raykavin/pairwatch/logger"
	zerologadapter "github.com/raykavin/pairwatch/logger/zerolog"
	"github.com/rs/zerolog"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := zerolog.New(io.Discard)
	return zerologadapter.NewAdapter(&l)
}
