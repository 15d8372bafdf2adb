package cache

import (
	"bytes"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
)

type s struct {
	V string
}

// encodeString serialises a value for memcache
func encodeString(value string) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s{V: value}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeString is the inverse of encodeString
func decodeString(data []byte) (string, error) {
	var dst s
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&dst); err != nil {
		return "", err
	}
	return dst.V, nil
}

// memcacheKey prefixes key, and replaces it with a hash when memcached would
// reject it (too long, or containing spaces or control characters)
func memcacheKey(key string) string {
	k := KeyPrefix + key
	if len(k) <= maxKeyLength && legalKey(k) {
		return k
	}

	sum := sha1.Sum([]byte(key))
	return HashedKeyPrefix + hex.EncodeToString(sum[:])
}

func legalKey(key string) bool {
	for i := 0; i < len(key); i++ {
		if key[i] <= ' ' || key[i] == 0x7f {
			return false
		}
	}
	return true
}
