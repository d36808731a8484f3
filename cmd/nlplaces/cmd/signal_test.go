package cmd

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/nlplaces/internal/logger"
)

func TestSignalContext_Cancel(t *testing.T) {
	ctx, cancel := signalContext(logger.NewNop())
	assert.NoError(t, ctx.Err())

	cancel()
	<-ctx.Done()
	assert.Error(t, ctx.Err())
}

func TestSignalContext_Signal(t *testing.T) {
	ctx, cancel := signalContext(logger.NewNop())
	defer cancel()

	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled on SIGINT")
	}
}
