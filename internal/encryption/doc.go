// Package encryption encrypts and decrypts single files into the cryptile container format.
//
// A container is a 32-byte header holding the SHA-256 fingerprint of the key, enciphered as
// two independent AES-256 blocks, followed by the file contents as independently enciphered
// 16-byte blocks. The final block always carries the padding length in its last byte.
//
// The format applies AES-256 to every block on its own, without chaining or an IV, and carries
// no authentication tag over the body. Equal plaintext blocks produce equal ciphertext blocks
// and modifications of the body go undetected. Only the key fingerprint is verified.
package encryption
