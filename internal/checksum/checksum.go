package checksum

import (
	"encoding/hex"
	"time"
	"unicode/utf8"

	"github.com/zeebo/xxh3"

	"github.com/illusions-app/history/internal/config"
)

// Digest computes the hex-encoded xxh3-128 checksum of text. The same
// function runs at snapshot write time and at restore time, so a
// mismatch always means the stored bytes changed.
func Digest(text string) string {
	h := xxh3.HashString128(text).Bytes()
	return hex.EncodeToString(h[:])
}

// DigestBytes is Digest over a raw byte slice.
func DigestBytes(data []byte) string {
	h := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(h[:])
}

// ByteSize returns the size of the UTF-8 encoding of text in bytes.
func ByteSize(text string) int64 {
	return int64(len(text))
}

// CharacterCount returns the number of code points in text.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}

// TimeToken formats t into the filename-safe YYYYMMDDHHmm token.
func TimeToken(t time.Time) string {
	return t.Format(config.TimestampLayout)
}
