package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	cases := []VerificationRequest{
		{Address: "abc", ReturnURI: "https://x"},
		{Address: "abc"},
		{Address: "X1Y2Z3", ReturnURI: "https://app.example/done?x=1&y=<2>"},
		{Address: "vLRHFqCw1uHu75xqB4fCDW-QxpkpJxBtFD9g4QYUbfw", ReturnURI: "http://localhost:3000/#/verified"},
		{Address: "адрес \"quoted\"", ReturnURI: "https://例え.jp/パス"},
	}

	for _, req := range cases {
		state, err := EncodeState(req)
		require.NoError(t, err)

		got, err := DecodeState(state)
		require.NoError(t, err)
		assert.Equal(t, req, got)
	}
}

func TestEncodeStateWireFormat(t *testing.T) {
	state, err := EncodeState(VerificationRequest{Address: "abc", ReturnURI: "https://x?a=1&b=2"})
	require.NoError(t, err)
	assert.Equal(t, `{"address":"abc","returnUri":"https://x?a=1&b=2"}`, state)

	state, err = EncodeState(VerificationRequest{Address: "abc"})
	require.NoError(t, err)
	assert.Equal(t, `{"address":"abc"}`, state)
}

func TestDecodeStateMalformed(t *testing.T) {
	for _, state := range []string{"", "not json", `{"returnUri":"https://x"}`, `["abc"]`} {
		_, err := DecodeState(state)
		assert.ErrorIs(t, err, ErrMalformedState, state)
	}
}

func TestDecodeStateAcceptsNullReturn(t *testing.T) {
	got, err := DecodeState(`{"address":"abc","returnUri":null}`)
	require.NoError(t, err)
	assert.Equal(t, VerificationRequest{Address: "abc"}, got)
}
