package gitrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusKindFromXY(t *testing.T) {
	cases := []struct {
		xy   string
		want StatusItemKind
	}{
		{"M.", StatusModified},
		{".M", StatusModified},
		{"A.", StatusNew},
		{".D", StatusDeleted},
		{"R.", StatusRenamed},
		{".R", StatusRenamed},
		{"T.", StatusTypechange},
		{"??", StatusModified},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, statusKindFromXY(tc.xy), "xy=%s", tc.xy)
	}
}

func TestStatusReportsRenameWithNewPath(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	gitIn(t, dir, "mv", "f.txt", "renamed.txt")

	items, err := h.Status(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "renamed.txt", items[0].Path, "rename must report the new path")
	require.Equal(t, StatusRenamed, items[0].Kind)
}
