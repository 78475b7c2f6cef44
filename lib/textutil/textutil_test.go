package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "fingercounting", NormalizeName("  Finger Counting \n"))
	require.Equal(t, "abc", NormalizeName("A b\tC"))
	require.Equal(t, "", NormalizeName("   "))
}

func TestNormalizePath(t *testing.T) {
	require.Equal(t, "/contest/1012/problem/D", NormalizePath("/contest/1012/problem/D/"))
	require.Equal(t, "/a/b", NormalizePath("/a//b"))
	require.Equal(t, "/a/b", NormalizePath("/a/./b"))
	require.Equal(t, "/", NormalizePath("/"))
	require.Equal(t, ".", NormalizePath(""))
}
