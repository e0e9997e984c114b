package langmap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds_MatchThroughWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	tests := []struct {
		name      string
		err       error
		transport bool
		parse     bool
		io        bool
	}{
		{
			name:      "transport",
			err:       fmt.Errorf("list directories: %w", &TransportError{Op: "list", URL: "http://x", Err: cause}),
			transport: true,
		},
		{
			name:  "parse",
			err:   fmt.Errorf("directory cpp: %w", &ParseError{Name: "cpp.contribution.ts", Line: 3, Column: 1, Err: cause}),
			parse: true,
		},
		{
			name: "io",
			err:  fmt.Errorf("write artifacts: %w", &IOError{Path: "build/index.js", Err: cause}),
			io:   true,
		},
		{
			name: "plain",
			err:  cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transport, IsTransportError(tt.err))
			assert.Equal(t, tt.parse, IsParseError(tt.err))
			assert.Equal(t, tt.io, IsIOError(tt.err))
			if tt.transport || tt.parse || tt.io {
				assert.ErrorIs(t, tt.err, cause)
			}
		})
	}
}

func TestParseError_Message(t *testing.T) {
	t.Parallel()

	withPos := &ParseError{Name: "a.ts", Line: 2, Column: 5, Err: errors.New("syntax error")}
	assert.Equal(t, "parse a.ts:2:5: syntax error", withPos.Error())

	noPos := &ParseError{Name: "a.ts", Err: errors.New("no tree")}
	assert.Equal(t, "parse a.ts: no tree", noPos.Error())
}

func TestTransportError_Message(t *testing.T) {
	t.Parallel()

	err := &TransportError{Op: "fetch source", URL: "https://raw/x.ts", Err: errors.New("status 404")}
	assert.Equal(t, "fetch source https://raw/x.ts: status 404", err.Error())
}
