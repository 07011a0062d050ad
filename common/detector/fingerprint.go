package detector

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Container signatures accepted at the start of a payload.
var signatures = [][]byte{
	{0xFF, 0xFB},  // MPEG-1 Layer III frame sync
	[]byte("ID3"), // ID3v2 tag header
}

// Fingerprint identifies an audio payload. It is the only source of
// randomness for the scoring pipeline.
type Fingerprint struct {
	Digest [sha256.Size]byte
	Seed   uint64
}

// Hex returns the digest as lowercase hex.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f.Digest[:])
}

// HasSignature reports whether audio begins with a recognised container
// signature.
func HasSignature(audio []byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(audio, sig) {
			return true
		}
	}
	return false
}

// Extract validates the signature of audio and derives its fingerprint. The
// seed is the first eight digest bytes read big-endian, i.e. the first 16 hex
// digits of the digest.
func Extract(audio []byte) (Fingerprint, error) {
	if len(audio) == 0 {
		return Fingerprint{}, &FormatError{Reason: "empty payload"}
	}
	if !HasSignature(audio) {
		return Fingerprint{}, &FormatError{Reason: "invalid MP3 format"}
	}
	fp := Fingerprint{Digest: sha256.Sum256(audio)}
	fp.Seed = binary.BigEndian.Uint64(fp.Digest[:8])
	return fp, nil
}
