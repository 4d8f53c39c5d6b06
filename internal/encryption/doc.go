// Package encryption provides the key derivation and cipher framing used by the vault file.
// Keys are derived with PBKDF2-HMAC-SHA256 and payloads are sealed with AES-256 in CBC mode
// with PKCS#7 padding. There is no authentication tag: callers must treat every decryption
// failure as an opaque failure to open the vault.
package encryption
