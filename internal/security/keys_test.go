package security

import (
	"encoding/base64"
	"testing"
)

func TestDecodeSigningKey(t *testing.T) {
	key, err := DecodeSigningKey(testSigningKeyB64)
	if err != nil {
		t.Fatalf("DecodeSigningKey: %v", err)
	}
	if len(key) < MinSigningKeyBytes {
		t.Errorf("decoded key length = %d, want >= %d", len(key), MinSigningKeyBytes)
	}
}

func TestDecodeSigningKey_Empty(t *testing.T) {
	if _, err := DecodeSigningKey(""); err != ErrInvalidKey {
		t.Errorf("empty key: want ErrInvalidKey, got %v", err)
	}
	if _, err := DecodeSigningKey("   "); err != ErrInvalidKey {
		t.Errorf("blank key: want ErrInvalidKey, got %v", err)
	}
}

func TestDecodeSigningKey_NotBase64(t *testing.T) {
	if _, err := DecodeSigningKey("!!!not base64!!!"); err != ErrInvalidKey {
		t.Errorf("bad base64: want ErrInvalidKey, got %v", err)
	}
}

func TestDecodeSigningKey_TooShort(t *testing.T) {
	short := base64.StdEncoding.EncodeToString(make([]byte, MinSigningKeyBytes-1))
	if _, err := DecodeSigningKey(short); err != ErrWeakKey {
		t.Errorf("short key: want ErrWeakKey, got %v", err)
	}
}
