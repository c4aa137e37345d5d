package service

import "testing"

func TestVerifySignatureRoundTrip(t *testing.T) {
	body := []byte(`{"event":"call_started","call":{"call_id":"call_123"}}`)
	key := "key_abc123"

	sig := Sign(body, key)
	if !VerifySignature(body, key, sig) {
		t.Fatalf("expected signature to verify")
	}
}

func TestVerifySignatureRejectsMutatedBody(t *testing.T) {
	body := []byte(`{"event":"call_started","call":{"call_id":"call_123"}}`)
	key := "key_abc123"
	sig := Sign(body, key)

	for i := range body {
		mutated := append([]byte(nil), body...)
		mutated[i] ^= 0x01
		if VerifySignature(mutated, key, sig) {
			t.Fatalf("expected mutation at byte %d to fail verification", i)
		}
	}
}

func TestVerifySignatureRejectsMutatedSignature(t *testing.T) {
	body := []byte(`{"event":"call_ended","call":{"call_id":"call_123"}}`)
	key := "key_abc123"
	sig := Sign(body, key)

	bad := []byte(sig)
	bad[0] ^= 0x01
	if VerifySignature(body, key, string(bad)) {
		t.Fatalf("expected altered signature to fail verification")
	}
	if VerifySignature(body, key, "garbage") {
		t.Fatalf("expected garbage signature to fail verification")
	}
}

func TestVerifySignatureRequiresKeyAndSignature(t *testing.T) {
	body := []byte(`{}`)
	if VerifySignature(body, "", Sign(body, "")) {
		t.Fatalf("expected empty key to fail verification")
	}
	if VerifySignature(body, "key", "") {
		t.Fatalf("expected empty signature to fail verification")
	}
}
