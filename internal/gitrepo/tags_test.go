package gitrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagsLightweightAndAnnotated(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	head, err := h.Head(ctx)
	require.NoError(t, err)

	require.NoError(t, h.CreateTag(ctx, "v1.0.0", CommitId{}, ""))
	require.NoError(t, h.CreateTag(ctx, "v1.1.0", CommitId{}, "release 1.1"))

	tags, err := h.Tags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	require.Equal(t, "v1.0.0", tags[0].Name)
	require.True(t, tags[0].Target.Equal(head))
	require.Empty(t, tags[0].Annotation)

	require.Equal(t, "v1.1.0", tags[1].Name)
	require.True(t, tags[1].Target.Equal(head), "annotated tag must report the peeled commit")
	require.Equal(t, "release 1.1", tags[1].Annotation)
}

func TestDeleteTag(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	require.NoError(t, h.CreateTag(ctx, "gone", CommitId{}, ""))
	require.NoError(t, h.DeleteTag(ctx, "gone"))

	tags, err := h.Tags(ctx)
	require.NoError(t, err)
	require.Empty(t, tags)
}
