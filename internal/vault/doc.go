// Package vault owns the on-disk vault file and mediates every read and write of it.
//
// The file layout is
//
//	[0, 16)   salt
//	[16, 32)  initialization vector
//	[32, end) AES-256-CBC ciphertext of the serialized credentials (empty until the first save)
//
// The salt is fixed for the lifetime of a file. The IV is reused on every rewrite unless
// WithRotateIV is given, in which case each save draws a fresh one; both variants produce
// the same layout.
package vault
