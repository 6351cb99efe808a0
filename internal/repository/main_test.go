//go:build integration

package repository_test

import (
	"os"
	"os/signal"
	"syscall"
	"testing"

	"task-manager-backend/internal/testutils"
)

// TestMain ensures Docker cleanup even when the run is interrupted.
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		testutils.CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()

	testutils.CleanupSharedContainer()
	os.Exit(code)
}
