package wrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewIssuer("owner", "s3cret", []byte("0123456789abcdef"), 20*time.Minute)
	require.NoError(t, err)

	token, ttl, err := issuer.Issue("http://mtug-1.servicebus.windows.net", "owner", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, ttl)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	assert.Equal(t, "http://mtug-1.servicebus.windows.net", claims.Scope)
	assert.NotEmpty(t, claims.ID)
}

func TestIssuer_RejectsBadCredentials(t *testing.T) {
	issuer, err := NewIssuer("owner", "s3cret", []byte("0123456789abcdef"), time.Minute)
	require.NoError(t, err)

	_, _, err = issuer.Issue("scope", "owner", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = issuer.Issue("scope", "someone", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssuer_VerifyFailures(t *testing.T) {
	issuer, err := NewIssuer("owner", "s3cret", []byte("0123456789abcdef"), time.Minute)
	require.NoError(t, err)
	token, _, err := issuer.Issue("scope", "owner", "s3cret")
	require.NoError(t, err)

	t.Run("other key", func(t *testing.T) {
		other, err := NewIssuer("owner", "s3cret", []byte("fedcba9876543210"), time.Minute)
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		issuer.now = func() time.Time { return time.Now().Add(time.Hour) }
		defer func() { issuer.now = time.Now }()
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewIssuer_RejectsOversizedSecret(t *testing.T) {
	_, err := NewIssuer("owner", string(make([]byte, 73)), []byte("0123456789abcdef"), time.Minute)
	assert.Error(t, err)
}

func TestAuthorizationHeader_RoundTrip(t *testing.T) {
	header := AuthorizationHeader("abc=&def")
	assert.Equal(t, `WRAP access_token="abc=&def"`, header)

	token, ok := ParseAuthorizationHeader(header)
	require.True(t, ok)
	assert.Equal(t, "abc=&def", token)

	for _, bad := range []string{"", "Bearer abc", `WRAP token="abc"`, `WRAP access_token=abc`, `WRAP access_token=""`} {
		_, ok := ParseAuthorizationHeader(bad)
		assert.False(t, ok, "header %q should not parse", bad)
	}
}
