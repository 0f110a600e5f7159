package monitoring

import (
	"fmt"
	"testing"
)

func TestDebugfRespectsVerbose(t *testing.T) {
	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() {
		SetLogger(nil)
		SetVerbose(false)
	})

	SetVerbose(false)
	Debugf("hidden %d", 1)
	if len(got) != 0 {
		t.Fatalf("Debugf logged while quiet: %v", got)
	}

	SetVerbose(true)
	if !Verbose() {
		t.Fatal("Verbose() = false after SetVerbose(true)")
	}
	Debugf("shown %d", 2)
	Logf("always %s", "on")

	want := []string{"shown 2", "always on"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetLoggerNilMutes(t *testing.T) {
	SetLogger(nil)
	// must not panic
	Logf("muted %v", true)
}
