package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptPhoneRoundTrip(t *testing.T) {
	cipher, err := EncryptPhone("9876543210")
	require.NoError(t, err)
	require.NotEmpty(t, cipher)

	plain, err := DecryptPhone(cipher)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", plain)
}

func TestEncryptPhoneNonceVaries(t *testing.T) {
	c1, err := EncryptPhone("9876543210")
	require.NoError(t, err)
	c2, err := EncryptPhone("9876543210")
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2)
}

func TestDecryptPhoneRejectsTruncatedPayload(t *testing.T) {
	_, err := DecryptPhone([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestDecryptPhoneRejectsTamperedPayload(t *testing.T) {
	cipher, err := EncryptPhone("9876543210")
	require.NoError(t, err)

	cipher[len(cipher)-1] ^= 0xff

	_, err = DecryptPhone(cipher)
	assert.Error(t, err)
}
