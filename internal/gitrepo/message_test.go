package gitrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettifyMessage(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trailing whitespace", "subject  \n\nbody\t\n", "subject\n\nbody\n"},
		{"collapses blank runs", "subject\n\n\n\nbody\n", "subject\n\nbody\n"},
		{"single trailing newline", "subject", "subject\n"},
		{"drops leading blanks", "\n\nsubject\n", "subject\n"},
		{"all blank", "\n  \n\t\n", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrettifyMessage(tc.in))
		})
	}
}

func TestStripCommentLines(t *testing.T) {
	in := "subject\n# a comment\nbody\n# another\n"
	assert.Equal(t, "subject\nbody\n", StripCommentLines(in))
}

func TestStripCommentLinesKeepsHashInsideLine(t *testing.T) {
	in := "fix #42\n"
	assert.Equal(t, "fix #42\n", StripCommentLines(in))
}
