package textfile

import (
	"context"
	"testing"

	"github.com/npillmayer/mlvec"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// traceToTest routes core tracing into t's log. The returned teardown
// restores the previous tracer, so that nothing logs into t after it ended.
func traceToTest(t *testing.T) func() {
	prev := gtrace.CoreTracer
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return func() {
		teardown()
		gtrace.CoreTracer = prev
	}
}

func TestLoad(t *testing.T) {
	defer traceToTest(t)()
	//
	v, err := Load("testdata/lorem.txt", mlvec.Config[string]{Exp: 2})
	require.NoError(t, err)
	require.Equal(t, 10, v.Len())
	first, err := v.Front()
	require.NoError(t, err)
	require.Equal(t, "Lorem ipsum dolor sit amet, consectetur adipiscing elit,", first)
	require.Equal(t, "", *v.Index(4))
	last, err := v.Back()
	require.NoError(t, err)
	require.Equal(t, "The end.", last)
	require.NoError(t, v.Check())
}

func TestLoaderBroadcastsProgress(t *testing.T) {
	loader := NewLoader(mlvec.Config[string]{Exp: 2})
	events, ok := loader.Subscribe(context.Background(), 16)
	require.True(t, ok)
	v, err := loader.Load("testdata/lorem.txt")
	require.NoError(t, err)
	var got []Progress
	for p := range events {
		got = append(got, p)
	}
	require.NotEmpty(t, got)
	final := got[len(got)-1]
	require.True(t, final.Done)
	require.NoError(t, final.Err)
	require.Equal(t, v.Len(), final.Lines)
	require.Equal(t, 2, final.Blocks)
	for i, p := range got[:len(got)-1] {
		require.False(t, p.Done)
		require.Equal(t, (i+1)*4, p.Lines)
		require.Equal(t, i+1, p.Blocks)
	}
}

func TestLoadRejectsDirectories(t *testing.T) {
	loader := NewLoader(mlvec.Config[string]{})
	events, ok := loader.Subscribe(context.Background(), 4)
	require.True(t, ok)
	_, err := loader.Load("testdata")
	require.Error(t, err)
	var got []Progress
	for p := range events {
		got = append(got, p)
	}
	require.Len(t, got, 1)
	require.True(t, got[0].Done)
	require.Error(t, got[0].Err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/no-such-file.txt", mlvec.Config[string]{})
	require.Error(t, err)
}

func TestLoadWithinBlockBudget(t *testing.T) {
	// two blocks of two lines plus their index block
	_, err := Load("testdata/lorem.txt", mlvec.Config[string]{Exp: 1, MaxBlocks: 3})
	require.ErrorIs(t, err, mlvec.ErrAllocationFailure)
}
