package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newTestManager(opts ...Option) *Manager {
	return NewManager(NewStore(), SHA256Hasher{}, zap.NewNop(), opts...)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.Register("alice", "secret", nil))
	assert.ErrorIs(t, m.Register("alice", "other", nil), ErrDuplicateUsername)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.Register("alice", "secret", strPtr("a@example.com")))
	assert.ErrorIs(t, m.Register("bob", "secret", strPtr("a@example.com")), ErrDuplicateEmail)
}

func TestRegister_EmptyEmailIsNoEmail(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.Register("alice", "secret", strPtr("")))
	require.NoError(t, m.Register("bob", "secret", strPtr("")))

	token, err := m.Login("bob", "secret")
	require.NoError(t, err)
	u, err := m.Profile(token)
	require.NoError(t, err)
	assert.Nil(t, u.Email)
}

func TestLoginProfile_RoundTrip(t *testing.T) {
	cases := []struct {
		username string
		password string
		email    *string
	}{
		{"alice", "pw1", strPtr("alice@example.com")},
		{"bob", "pw2", nil},
		{"carol", "", strPtr("carol@example.com")},
	}

	m := newTestManager()
	for _, c := range cases {
		require.NoError(t, m.Register(c.username, c.password, c.email))
	}

	for _, c := range cases {
		token, err := m.Login(c.username, c.password)
		require.NoError(t, err, c.username)

		u, err := m.Profile(token)
		require.NoError(t, err)
		assert.Equal(t, c.username, u.Username)
		assert.Equal(t, c.email, u.Email)
	}
}

func TestLogin_ByEmail(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("alice", "secret", strPtr("alice@example.com")))

	token, err := m.Login("alice@example.com", "secret")
	require.NoError(t, err)

	name, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestLogin_UsernameWinsOverEmail(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("x@example.com", "first", nil))
	require.NoError(t, m.Register("bob", "second", strPtr("x@example.com")))

	_, err := m.Login("x@example.com", "second")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := m.Login("x@example.com", "first")
	require.NoError(t, err)
	name, _ := m.Resolve(token)
	assert.Equal(t, "x@example.com", name)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("alice", "secret", nil))

	_, err := m.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Login("nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TokensAreDistinctAndLong(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("alice", "secret", nil))

	t1, err := m.Login("alice", "secret")
	require.NoError(t, err)
	t2, err := m.Login("alice", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.GreaterOrEqual(t, len(t1), 32)
	assert.Equal(t, 2, m.ActiveSessions())
}

func TestLogout_RevokesToken(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("alice", "secret", nil))
	token, err := m.Login("alice", "secret")
	require.NoError(t, err)

	require.NoError(t, m.Logout(token))

	_, err = m.Profile(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, m.Logout(token), ErrInvalidToken)
}

func TestLogout_OtherSessionsSurvive(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("alice", "secret", nil))
	t1, _ := m.Login("alice", "secret")
	t2, _ := m.Login("alice", "secret")

	require.NoError(t, m.Logout(t1))

	name, err := m.Resolve(t2)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestResolve_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(WithTTL(time.Hour), WithClock(func() time.Time { return now }))
	require.NoError(t, m.Register("alice", "secret", nil))
	token, err := m.Login("alice", "secret")
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = m.Resolve(token)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(WithTTL(time.Hour), WithClock(func() time.Time { return now }))
	require.NoError(t, m.Register("alice", "secret", nil))

	_, _ = m.Login("alice", "secret")
	now = now.Add(30 * time.Minute)
	fresh, _ := m.Login("alice", "secret")
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.ActiveSessions())
	_, err := m.Resolve(fresh)
	assert.NoError(t, err)
}

func TestSweep_NoTTLKeepsEverything(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Register("alice", "secret", nil))
	_, _ = m.Login("alice", "secret")

	assert.Zero(t, m.Sweep())
	assert.Equal(t, 1, m.ActiveSessions())
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	m := newTestManager()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.Register("alice", "secret", nil)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateUsername)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestHashers(t *testing.T) {
	for name, h := range map[string]Hasher{"sha256": SHA256Hasher{}, "bcrypt": BcryptHasher{Cost: 4}} {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("secret")
			require.NoError(t, err)
			assert.NotEqual(t, "secret", hash)
			assert.True(t, h.Verify(hash, "secret"))
			assert.False(t, h.Verify(hash, "Secret"))
		})
	}
}

func TestSHA256Hasher_Deterministic(t *testing.T) {
	a, _ := SHA256Hasher{}.Hash("secret")
	b, _ := SHA256Hasher{}.Hash("secret")
	assert.Equal(t, a, b)
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", a)
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	_, err = NewHasher("md5")
	assert.Error(t, err)
}

func TestSweeper_InvalidSpec(t *testing.T) {
	s := NewSweeper(newTestManager(), "not a spec", zap.NewNop())
	assert.Error(t, s.Start())
}

func TestSweeper_StartStop(t *testing.T) {
	s := NewSweeper(newTestManager(), "@every 1h", zap.NewNop())
	require.NoError(t, s.Start())
	s.Stop()
}
