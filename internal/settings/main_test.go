// ABOUTME: Test entry point for the settings package
// ABOUTME: Fails the run if any test leaves goroutines behind

package settings

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
