package config

import (
	"testing"

	"go.uber.org/goleak"
)

// lumberjack starts its mill goroutine on the first write and never stops
// it, even after Close. It idles on a channel and holds no file.
var lumberjackMill = goleak.IgnoreAnyFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun")

func verifyNoLeaks(t *testing.T) {
	t.Helper()
	goleak.VerifyNone(t, lumberjackMill)
}
