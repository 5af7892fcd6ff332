package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFetcher_Modes(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, arg string) (string, error) {
		calls++
		return "hello " + arg, nil
	}

	t.Run("eager starts loading and runs on mount", func(t *testing.T) {
		calls = 0
		f := New(fn, Eager, "world")
		assert.True(t, f.State().Loading())

		st := f.Mount(context.Background())
		data, ok := st.Data()
		require.True(t, ok)
		assert.Equal(t, "hello world", data)
		assert.Equal(t, 1, calls)
		assert.Equal(t, st, f.State())
	})

	t.Run("lazy stays idle on mount", func(t *testing.T) {
		calls = 0
		f := New(fn, Lazy, "")
		st := f.Mount(context.Background())
		assert.Equal(t, StatusIdle, st.Status())
		assert.Equal(t, 0, calls)

		st = f.Exec(context.Background(), "again")
		data, ok := st.Data()
		require.True(t, ok)
		assert.Equal(t, "hello again", data)
		assert.Equal(t, 1, calls)
	})
}

func TestFetcher_StateConsistency(t *testing.T) {
	fail := true
	f := New(func(ctx context.Context, arg int) (int, error) {
		if fail {
			return 0, errors.New("upstream down")
		}
		return arg * 2, nil
	}, Lazy, 0)

	st := f.Exec(context.Background(), 1)
	assert.Equal(t, StatusFailed, st.Status())
	assert.EqualError(t, st.Err(), "upstream down")
	_, ok := st.Data()
	assert.False(t, ok)

	fail = false
	st = f.Exec(context.Background(), 21)
	assert.Equal(t, StatusLoaded, st.Status())
	assert.NoError(t, st.Err(), "previous error must not survive a successful run")
	data, ok := st.Data()
	require.True(t, ok)
	assert.Equal(t, 42, data)
}

func TestFetcher_LoadingClearsPreviousResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	first := true

	f := New(func(ctx context.Context, arg string) (string, error) {
		if first {
			first = false
			return "old", nil
		}
		started <- struct{}{}
		<-release
		return "new", nil
	}, Lazy, "")

	f.Exec(context.Background(), "a")

	done := f.Go(context.Background(), "b")
	<-started

	st := f.State()
	assert.True(t, st.Loading())
	_, ok := st.Data()
	assert.False(t, ok)
	assert.NoError(t, st.Err())

	close(release)
	final := <-done
	data, _ := final.Data()
	assert.Equal(t, "new", data)

	_, open := <-done
	assert.False(t, open)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
