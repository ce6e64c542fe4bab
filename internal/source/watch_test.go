package source

import (
	"context"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()
	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return nil
	}
}

func TestWatch(t *testing.T) {
	t.Parallel()

	t.Run("reloads on write", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "items.txt", "one\n\ntwo\n")
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		w, err := Watch(ctx, path)
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, os.WriteFile(path, []byte("one\n\ntwo\n\nthree\n"), 0o644))

		// Truncating and writing are separate events, so an intermediate
		// empty reload may come first.
		var msg ReloadMsg
		for range 10 {
			var ok bool
			msg, ok = waitMsg(t, WaitForReload(w)).(ReloadMsg)
			require.True(t, ok)
			if len(msg.Records) == 3 {
				break
			}
		}
		assert.Equal(t, w.Path(), msg.Path)
		require.NoError(t, msg.Err)
		assert.Len(t, msg.Records, 3)
	})

	t.Run("stops with the context", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "items.txt", "one\n")
		ctx, cancel := context.WithCancel(t.Context())

		w, err := Watch(ctx, path)
		require.NoError(t, err)
		cancel()

		assert.Nil(t, waitMsg(t, WaitForReload(w)))
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := Watch(t.Context(), "/does/not/exist/items.txt")
		assert.Error(t, err)
	})
}
