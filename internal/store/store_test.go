package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	_, _, applied, err := s.Set("k", []byte("v"), SetOptions{})
	require.NoError(t, err)
	assert.True(t, applied)

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestSetNXRejectsExisting(t *testing.T) {
	s := New()
	s.Set("k", []byte("v1"), SetOptions{})
	_, _, applied, err := s.Set("k", []byte("v2"), SetOptions{NX: true})
	require.NoError(t, err)
	assert.False(t, applied)

	v, _, _ := s.Get("k")
	assert.Equal(t, []byte("v1"), v)
}

func TestSetXXRejectsAbsent(t *testing.T) {
	s := New()
	_, _, applied, err := s.Set("absent", []byte("v"), SetOptions{XX: true})
	require.NoError(t, err)
	assert.False(t, applied)
	_, ok, _ := s.Get("absent")
	assert.False(t, ok)
}

func TestWrongTypeDoesNotMutate(t *testing.T) {
	s := New()
	s.LPush("k", []byte("a"))

	_, ok, err := s.Get("k")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrWrongType)

	n, err := s.LLen("k")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLazyExpiryOnAccess(t *testing.T) {
	s := New()
	s.Set("k", []byte("v"), SetOptions{TTLMillis: 1})
	time.Sleep(5 * time.Millisecond)

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Exists("k"))
}

func TestIncrDecrRoundTrip(t *testing.T) {
	s := New()
	n, err := s.IncrBy("counter", 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	n, err = s.IncrBy("counter", -5)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestIncrOverflow(t *testing.T) {
	s := New()
	s.Set("k", []byte("9223372036854775807"), SetOptions{})
	_, err := s.IncrBy("k", 1)
	assert.ErrorIs(t, err, ErrOverflow)

	v, _, _ := s.Get("k")
	assert.Equal(t, []byte("9223372036854775807"), v)
}

func TestIncrNotInteger(t *testing.T) {
	s := New()
	s.Set("k", []byte("abc"), SetOptions{})
	_, err := s.IncrBy("k", 1)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestListPushOrderAndRange(t *testing.T) {
	s := New()
	s.LPush("l", []byte("a"), []byte("b"), []byte("c"))
	vals, err := s.LRange("l", 0, -1)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, []byte("c"), vals[0])
	assert.Equal(t, []byte("b"), vals[1])
	assert.Equal(t, []byte("a"), vals[2])
}

func TestListRangeBoundaries(t *testing.T) {
	s := New()
	s.RPush("l", []byte("a"), []byte("b"), []byte("c"))

	vals, err := s.LRange("l", -2, -1)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("c")}, vals)

	vals, err = s.LRange("l", 5, 10)
	require.NoError(t, err)
	assert.Empty(t, vals)

	vals, err = s.LRange("l", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestListPopRemovesEmptyKey(t *testing.T) {
	s := New()
	s.LPush("l", []byte("only"))
	v, ok, err := s.LPop("l")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("only"), v)
	assert.Equal(t, 0, s.Exists("l"))
}

func TestLIndexNegative(t *testing.T) {
	s := New()
	s.RPush("l", []byte("a"), []byte("b"), []byte("c"))
	v, ok, err := s.LIndex("l", -1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("c"), v)
}

func TestSetAddDedupAndCard(t *testing.T) {
	s := New()
	added, err := s.SAdd("s", []byte("a"), []byte("b"), []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	card, err := s.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 2, card)
}

func TestSetRemoveEmptiesKey(t *testing.T) {
	s := New()
	s.SAdd("s", []byte("a"))
	removed, err := s.SRem("s", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Exists("s"))
}

func TestHashSetGetAndCreatedCount(t *testing.T) {
	s := New()
	n, err := s.HSet("h", HField{Field: []byte("f1"), Value: []byte("v1")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.HSet("h", HField{Field: []byte("f1"), Value: []byte("v2")})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	v, ok, err := s.HGet("h", []byte("f1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), v)
}

func TestHashDelEmptiesKey(t *testing.T) {
	s := New()
	s.HSet("h", HField{Field: []byte("f1"), Value: []byte("v1")})
	removed, err := s.HDel("h", [][]byte{[]byte("f1")})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Exists("h"))
}

func TestHIncrByOverflowRules(t *testing.T) {
	s := New()
	n, err := s.HIncrBy("h", []byte("f"), 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)

	s.HSet("h", HField{Field: []byte("bad"), Value: []byte("xyz")})
	_, err = s.HIncrBy("h", []byte("bad"), 1)
	assert.ErrorIs(t, err, ErrNotInteger)

	s.HSet("h", HField{Field: []byte("max"), Value: []byte("9223372036854775807")})
	_, err = s.HIncrBy("h", []byte("max"), 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestExpireTTLPersist(t *testing.T) {
	s := New()
	s.Set("k", []byte("v"), SetOptions{})
	assert.EqualValues(t, -1, s.TTL("k"))
	assert.EqualValues(t, -2, s.TTL("absent"))

	assert.Equal(t, 1, s.Expire("k", 100))
	ttl := s.TTL("k")
	assert.True(t, ttl > 0 && ttl <= 100)

	assert.Equal(t, 1, s.Persist("k"))
	assert.EqualValues(t, -1, s.TTL("k"))
	assert.Equal(t, 0, s.Persist("k"))
}

func TestRenameAndRenameNX(t *testing.T) {
	s := New()
	s.Set("a", []byte("v"), SetOptions{})
	require.NoError(t, s.Rename("a", "b"))
	v, ok, _ := s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	err := s.Rename("nope", "c")
	assert.ErrorIs(t, err, ErrNoSuchKey)

	s.Set("d", []byte("other"), SetOptions{})
	ok2, err := s.RenameNX("b", "d")
	require.NoError(t, err)
	assert.False(t, ok2)
}

func TestKeysGlobPattern(t *testing.T) {
	s := New()
	s.Set("foo1", []byte("v"), SetOptions{})
	s.Set("foo2", []byte("v"), SetOptions{})
	s.Set("bar", []byte("v"), SetOptions{})

	keys := s.Keys("foo*")
	assert.ElementsMatch(t, []string{"foo1", "foo2"}, keys)

	keys = s.Keys("*")
	assert.ElementsMatch(t, []string{"foo1", "foo2", "bar"}, keys)
}

func TestKeysGlobEscapedLiteral(t *testing.T) {
	s := New()
	s.Set("a*b", []byte("v"), SetOptions{})
	s.Set("axxb", []byte("v"), SetOptions{})

	keys := s.Keys(`a\*b`)
	assert.Equal(t, []string{"a*b"}, keys)
}

func TestActiveExpireCycleRemovesExpired(t *testing.T) {
	s := New()
	s.Set("k", []byte("v"), SetOptions{TTLMillis: 1})
	time.Sleep(5 * time.Millisecond)

	sampled, expired := s.ActiveExpireCycle()
	assert.Equal(t, 1, sampled)
	assert.Equal(t, 1, expired)
	assert.Equal(t, 0, s.DBSize())
}

func TestDBSizeSweepsExpired(t *testing.T) {
	s := New()
	s.Set("live", []byte("v"), SetOptions{})
	s.Set("dead", []byte("v"), SetOptions{TTLMillis: 1})
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, s.DBSize())
}

func TestMSetWritesAllPairs(t *testing.T) {
	s := New()
	s.MSet([]KV{{Key: "a", Val: []byte("1")}, {Key: "b", Val: []byte("2")}})

	va, _, _ := s.Get("a")
	vb, _, _ := s.Get("b")
	assert.Equal(t, []byte("1"), va)
	assert.Equal(t, []byte("2"), vb)
}

func TestMGetMixedPresenceAndType(t *testing.T) {
	s := New()
	s.Set("str", []byte("v"), SetOptions{})
	s.LPush("list", []byte("x"))

	got := s.MGet([]string{"str", "absent", "list"})
	require.Len(t, got, 3)
	assert.Equal(t, []byte("v"), got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])
}
