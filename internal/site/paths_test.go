package site

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ana", "ana"},
		{"mdl/solid", "mdl-solid"},
		{"tests/thermomech", "tests-thermomech"},
		{"a/b/c", "a-b-c"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FlatName(tc.in))
		// Idempotent on inputs already free of separators.
		require.Equal(t, tc.want, FlatName(FlatName(tc.in)))
	}
}

func TestPageFileName(t *testing.T) {
	require.Equal(t, "xxana.html", PageFileName("ana"))
	require.Equal(t, "xxmdl-solid.html", PageFileName("mdl/solid"))
}
