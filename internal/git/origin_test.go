package git

import (
	"testing"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRemoteURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/cpmech/gofem.git", "https://github.com/cpmech/gofem"},
		{"https://github.com/cpmech/gofem", "https://github.com/cpmech/gofem"},
		{"git@github.com:cpmech/gofem.git", "https://github.com/cpmech/gofem"},
		{"ssh://git@github.com/cpmech/gofem.git", "https://github.com/cpmech/gofem"},
		{"ssh://git@git.home.luguber.info:2222/inful/godocsite.git", "https://git.home.luguber.info/inful/godocsite"},
	}
	for _, tc := range cases {
		got, err := NormalizeRemoteURL(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}
}

func TestNormalizeRemoteURL_Unsupported(t *testing.T) {
	for _, in := range []string{"", "/local/path/repo", "file:///x"} {
		_, err := NormalizeRemoteURL(in)
		require.Error(t, err, in)
	}
}

func TestDetectRepoURL(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:cpmech/gofem.git"},
	})
	require.NoError(t, err)

	url, err := DetectRepoURL(dir)
	require.NoError(t, err)
	require.Equal(t, "https://github.com/cpmech/gofem", url)
}

func TestDetectRepoURL_NotARepository(t *testing.T) {
	_, err := DetectRepoURL(t.TempDir())
	require.Error(t, err)
}
