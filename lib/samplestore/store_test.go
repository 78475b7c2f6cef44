package samplestore

import (
	"context"
	"testing"

	"ojtools/lib/judge"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cases := []judge.TestCase{
		{
			Name:       "Sample #1",
			InputName:  "Input",
			Input:      []byte("3\n1 2 3\n"),
			OutputName: "Output",
			Output:     []byte("6\n"),
		},
		{
			Name:       "Sample #2",
			InputName:  "Input",
			Input:      []byte("5\n"),
			OutputName: "Output",
			Output:     []byte("5\n"),
		},
	}

	url := "https://codeforces.com/contest/1012/problem/D"
	require.NoError(t, store.Put(ctx, url, cases))

	got, err := store.Get(ctx, url)
	require.NoError(t, err)
	diff := cmp.Diff(cases, got)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestGetUnknownProblemReturnsNil(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Get(context.Background(), "https://atcoder.jp/contests/abc077/tasks/arc084_b")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPutReplacesPreviousSet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	url := "https://community.topcoder.com/stat?c=problem_statement&pm=10760"

	first := []judge.TestCase{
		{Name: "Example #0", InputName: "input", Input: []byte("1\n"), OutputName: "output", Output: []byte("1")},
		{Name: "Example #1", InputName: "input", Input: []byte("2\n"), OutputName: "output", Output: []byte("2")},
	}
	require.NoError(t, store.Put(ctx, url, first))

	second := []judge.TestCase{
		{Name: "Example #0", InputName: "input", Input: []byte("3\n"), OutputName: "output", Output: []byte("9")},
	}
	require.NoError(t, store.Put(ctx, url, second))

	got, err := store.Get(ctx, url)
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestStoresAreIsolatedByProblem(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := []judge.TestCase{{Name: "Sample #1", InputName: "Input", Input: []byte("a\n"), OutputName: "Output", Output: []byte("a\n")}}
	b := []judge.TestCase{{Name: "Sample #1", InputName: "Input", Input: []byte("b\n"), OutputName: "Output", Output: []byte("b\n")}}

	require.NoError(t, store.Put(ctx, "https://atcoder.jp/contests/x/tasks/x_a", a))
	require.NoError(t, store.Put(ctx, "https://atcoder.jp/contests/x/tasks/x_b", b))

	got, err := store.Get(ctx, "https://atcoder.jp/contests/x/tasks/x_a")
	require.NoError(t, err)
	require.Equal(t, a, got)
}
