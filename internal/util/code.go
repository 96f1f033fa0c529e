package util

import "crypto/rand"

// Alphabet for human-entered access codes. 0/O and 1/I are excluded because
// the codes are read aloud and typed by young students.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateAccessCode returns an upper-case code of the given length.
func GenerateAccessCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
