package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"blog-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	applied  []string
	swept    int64
	revoked  map[string]int
	err      error
	closed   bool
	revokeOf string
}

func (f *fakeBackend) Migrate(ctx context.Context) ([]string, error) {
	return f.applied, f.err
}

func (f *fakeBackend) SweepSessions(ctx context.Context) (int64, error) {
	return f.swept, f.err
}

func (f *fakeBackend) RevokeSessions(ctx context.Context, username string) (int, error) {
	f.revokeOf = username
	if f.err != nil {
		return 0, f.err
	}
	n, ok := f.revoked[username]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return n, nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

// run executes blog-admin with args against backend and returns stdout.
func run(t *testing.T, backend *fakeBackend, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd(func(ctx context.Context, logger *slog.Logger) (Backend, error) {
		return backend, nil
	})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	backend := &fakeBackend{applied: []string{"0001_init.sql", "0002_content.sql"}}

	out, err := run(t, backend, "migrate")

	require.NoError(t, err)
	assert.Equal(t, "Applied 0001_init.sql\nApplied 0002_content.sql\n", out)
	assert.True(t, backend.closed)
}

func TestMigrate_UpToDate(t *testing.T) {
	out, err := run(t, &fakeBackend{}, "migrate")

	require.NoError(t, err)
	assert.Equal(t, "Database is up to date\n", out)
}

func TestSessionsSweep(t *testing.T) {
	out, err := run(t, &fakeBackend{swept: 7}, "sessions", "sweep", "--log-level", "debug")

	require.NoError(t, err)
	assert.Equal(t, "Deleted 7 expired sessions\n", out)
}

func TestSessionsRevoke(t *testing.T) {
	backend := &fakeBackend{revoked: map[string]int{"alice": 3}}

	out, err := run(t, backend, "sessions", "revoke", "Alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", backend.revokeOf)
	assert.Equal(t, "Revoked 3 sessions of alice\n", out)
}

func TestSessionsRevoke_UnknownUser(t *testing.T) {
	_, err := run(t, &fakeBackend{revoked: map[string]int{}}, "sessions", "revoke", "bob")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `no user named "bob"`)
}

func TestSessionsRevoke_RequiresUsername(t *testing.T) {
	_, err := run(t, &fakeBackend{}, "sessions", "revoke")

	assert.Error(t, err)
}

func TestBackendFailure(t *testing.T) {
	_, err := run(t, &fakeBackend{err: errors.New("connection reset")}, "sessions", "sweep")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep sessions: connection reset")
}

func TestOpenFailure(t *testing.T) {
	root := NewRootCmd(func(ctx context.Context, logger *slog.Logger) (Backend, error) {
		return nil, errors.New("dial tcp: refused")
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"migrate"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect: dial tcp: refused")
}
