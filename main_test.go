package funnylog2_test

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// The tracer falls back to the process-wide facade when no logger is
	// injected; keep its lazily constructed sink inside a temp dir.
	dir, err := os.MkdirTemp("", "funnylog2-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("TRACE_LOG_DIR", dir)
	os.Setenv("TRACE_SYS_ARCH", "x86")
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
