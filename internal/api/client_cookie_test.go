package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func TestClientCookies_IssueAndVerify(t *testing.T) {
	cookies := NewClientCookies(testSecret, time.Hour, false)
	id := uuid.NewString()

	token, err := cookies.Issue(id)
	require.NoError(t, err)

	got, issued, err := cookies.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.WithinDuration(t, time.Now(), issued, 2*time.Second)
}

func TestClientCookies_RejectsForeignSignature(t *testing.T) {
	token, err := NewClientCookies("another-secret-of-16+", time.Hour, false).Issue(uuid.NewString())
	require.NoError(t, err)

	_, _, err = NewClientCookies(testSecret, time.Hour, false).Verify(token)
	assert.Error(t, err)
}

func TestClientCookies_RejectsExpired(t *testing.T) {
	cookies := NewClientCookies(testSecret, time.Hour, false)
	cookies.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := cookies.Issue(uuid.NewString())
	require.NoError(t, err)

	cookies.now = time.Now
	_, _, err = cookies.Verify(token)
	assert.Error(t, err)
}

func TestClientCookies_RejectsNonUUIDSubject(t *testing.T) {
	cookies := NewClientCookies(testSecret, time.Hour, false)
	token, err := cookies.Issue("not-a-uuid")
	require.NoError(t, err)

	_, _, err = cookies.Verify(token)
	assert.Error(t, err)
}

func TestClientCookies_Identify(t *testing.T) {
	cookies := NewClientCookies(testSecret, time.Hour, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	fresh, refresh := cookies.Identify(r)
	assert.True(t, refresh)
	_, err := uuid.Parse(fresh)
	assert.NoError(t, err)

	token, err := cookies.Issue(fresh)
	require.NoError(t, err)
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: clientCookieName, Value: token})
	id, refresh := cookies.Identify(r)
	assert.Equal(t, fresh, id)
	assert.False(t, refresh, "a young token is not reissued")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: clientCookieName, Value: "garbage"})
	id, refresh = cookies.Identify(r)
	assert.NotEqual(t, fresh, id)
	assert.True(t, refresh)
}

func TestClientCookies_SetWritesHTTPOnlyCookie(t *testing.T) {
	cookies := NewClientCookies(testSecret, time.Hour, true)
	rec := httptest.NewRecorder()

	require.NoError(t, cookies.Set(rec, uuid.NewString()))

	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	c := res.Cookies()[0]
	assert.Equal(t, clientCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, 3600, c.MaxAge)
}
