package svn_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
)

func requireParseError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var parseErr *rebaseerrors.QueryParseError
	require.True(t, errors.As(err, &parseErr), "expected QueryParseError, got %T: %v", err, err)
	require.Equal(t, rebaseerrors.ExitParseFailure, rebaseerrors.ExitCode(err))
}
