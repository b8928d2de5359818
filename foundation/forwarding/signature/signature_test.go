package signature_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/relaylabs/relay/foundation/forwarding/signature"
)

const (
	pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	from     = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	value := struct {
		To    string
		Value uint64
	}{
		To:    "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
		Value: 250,
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	v, r, s, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if err := signature.VerifySignature(v, r, s); err != nil {
		t.Fatalf("Should be able to verify the signature: %s", err)
	}

	addr, err := signature.FromAddress(value, v, r, s)
	if err != nil {
		t.Fatalf("Should be able to generate from address: %s", err)
	}

	if from != addr {
		t.Logf("got: %s", addr)
		t.Logf("exp: %s", from)
		t.Fatalf("Should get back the right address.")
	}

	str := signature.SignatureString(v, r, s)

	v2, r2, s2, err := signature.ToVRSFromHexSignature(str)
	if err != nil {
		t.Fatalf("Should be able to convert the signature string back: %s", err)
	}

	if v.Cmp(v2) != 0 || r.Cmp(r2) != 0 || s.Cmp(s2) != 0 {
		t.Fatalf("Should get back the same signature values.")
	}
}

func Test_Hash(t *testing.T) {
	value := struct {
		To    string
		Value uint64
	}{
		To:    "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
		Value: 250,
	}
	hash := "0x64f3a2eb13ef16138241d9b33099b71bd134df914b698027f1c792ef55d08c2b"

	h := signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}

	h = signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the same hash twice.")
	}
}

func Test_BadRecoveryID(t *testing.T) {
	value := struct {
		To    string
		Value uint64
	}{
		To:    "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
		Value: 250,
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	v, r, s, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	badV := big.NewInt(0).Add(v, big.NewInt(10))
	if err := signature.VerifySignature(badV, r, s); err == nil {
		t.Fatalf("Should not be able to verify a signature with a bad recovery id.")
	}
}

func Test_SignConsistency(t *testing.T) {
	value1 := struct {
		To    string
		Value uint64
	}{
		To:    "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
		Value: 250,
	}
	value2 := struct {
		To    string
		Value uint64
	}{
		To:    "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
		Value: 1000,
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	v1, r1, s1, err := signature.Sign(value1, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	addr1, err := signature.FromAddress(value1, v1, r1, s1)
	if err != nil {
		t.Fatalf("Should be able to generate an address: %s", err)
	}

	v2, r2, s2, err := signature.Sign(value2, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	addr2, err := signature.FromAddress(value2, v2, r2, s2)
	if err != nil {
		t.Fatalf("Should be able to generate an address: %s", err)
	}

	if addr1 != addr2 {
		t.Errorf("Got: %s", addr1)
		t.Errorf("Got: %s", addr2)
		t.Fatalf("Should have the same address.")
	}
}
