package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cases := []Value{
		SimpleString("OK"),
		Error("ERR", "wrong number of arguments for 'set'"),
		Integer(42),
		Integer(-1),
		Bulk([]byte("hello")),
		Bulk([]byte("")),
		NullBulk(),
		Array([]Value{Bulk([]byte("a")), Bulk([]byte("b"))}),
		Array(nil),
		NullArray(),
	}

	for _, v := range cases {
		wire := Encode(v)
		got, n, err := Decode(wire, 0)
		require.NoError(t, err)
		assert.Equal(t, len(wire), n)
		assert.Equal(t, v.Kind, got.Kind)
		switch v.Kind {
		case KindBulk:
			assert.Equal(t, v.Bulk, got.Bulk)
		case KindArray:
			assert.Equal(t, len(v.Array), len(got.Array))
		case KindSimpleString:
			assert.Equal(t, v.Str, got.Str)
		case KindInteger:
			assert.Equal(t, v.Int, got.Int)
		case KindError:
			assert.Equal(t, v.Err, got.Err)
		}
	}
}

func TestDecodeIncomplete(t *testing.T) {
	full := Encode(Array([]Value{Bulk([]byte("GET")), Bulk([]byte("foo"))}))
	for i := 0; i < len(full); i++ {
		_, _, err := Decode(full[:i], 0)
		assert.ErrorIs(t, err, ErrIncomplete, "prefix of length %d should be incomplete", i)
	}
	_, n, err := Decode(full, 0)
	require.NoError(t, err)
	assert.Equal(t, len(full), n)
}

func TestDecodeNullBulkAndEmptyBulk(t *testing.T) {
	v, n, err := Decode([]byte("$-1\r\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, v.IsNull())

	v, n, err = Decode([]byte("$0\r\n\r\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.False(t, v.IsNull())
	assert.Equal(t, []byte{}, v.Bulk)
}

func TestDecodeProtocolErrors(t *testing.T) {
	cases := []string{
		"$abc\r\n",     // non-digit length
		"$-2\r\n",      // negative length other than -1
		"*-2\r\n",      // negative count other than -1
		"$3\r\nabXYZ",  // missing terminator
		"#foo\r\n",     // unknown prefix
		":notanum\r\n", // bad integer
	}
	for _, c := range cases {
		_, _, err := Decode([]byte(c), 0)
		require.Error(t, err)
		var perr *ProtocolError
		assert.ErrorAs(t, err, &perr, "case %q should be a protocol error, got %v", c, err)
	}
}

func TestDecodeBulkLengthCap(t *testing.T) {
	_, _, err := Decode([]byte("$100\r\n"), 10)
	require.Error(t, err)
	var perr *ProtocolError
	assert.ErrorAs(t, err, &perr)
}

func TestDecodeCommandArray(t *testing.T) {
	wire := "*2\r\n$4\r\nPING\r\n$5\r\nhello\r\n"
	v, n, err := Decode([]byte(wire), 0)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	require.Equal(t, KindArray, v.Kind)
	require.Len(t, v.Array, 2)
	assert.Equal(t, "PING", string(v.Array[0].Bulk))
	assert.Equal(t, "hello", string(v.Array[1].Bulk))
}
