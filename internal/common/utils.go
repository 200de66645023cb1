package common

// WipeByteArray overwrites the buffer with zeros. Used to clear plaintext
// passwords from memory once they have been hashed or sent.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
