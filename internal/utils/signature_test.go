package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VerdeSupply/storefront_api/internal/utils"
)

func TestSignature(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event_type":"item.updated","data":{"item_id":"42"}}`)

	sig := utils.GenerateSignature(payload, "secret")
	assert.Len(t, sig, 64)

	assert.True(t, utils.VerifySignature(payload, sig, "secret"))
	assert.False(t, utils.VerifySignature(payload, sig, "other-secret"))
	assert.False(t, utils.VerifySignature([]byte("tampered"), sig, "secret"))
	assert.False(t, utils.VerifySignature(payload, "", "secret"))
}

func TestVerifySignatureEmptySecret(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event_type":"item.updated"}`)

	// A signature computed with an empty key must not verify; an unset
	// secret would otherwise accept arbitrary forged requests.
	forged := utils.GenerateSignature(payload, "")
	assert.False(t, utils.VerifySignature(payload, forged, ""))
	assert.False(t, utils.VerifySignature(payload, "", ""))
}
