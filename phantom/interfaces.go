package phantom

import "context"

// Signer is a public-key signature scheme: sign a message under a
// private key, verify a signature under the corresponding public key.
type Signer interface {
	Sign(ctx context.Context, msg []byte) ([]byte, error)
	Verify(msg, sig []byte) error
}

// PKE is a public-key encryption scheme.
type PKE interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// KEM is a key-encapsulation mechanism: encapsulate produces a
// ciphertext and a shared secret under the recipient's public key;
// decapsulate recovers the shared secret from the ciphertext under
// the matching private key.
type KEM interface {
	Encapsulate(ctx context.Context) (ciphertext, sharedSecret []byte, err error)
	Decapsulate(ciphertext []byte) (sharedSecret []byte, err error)
}

// KeyExchange is an interactive two-party key agreement primitive
// (e.g. an ECDH-style scheme built on package ecc).
type KeyExchange interface {
	Public() []byte
	SharedSecret(peerPublic []byte) ([]byte, error)
}

// IBE is an identity-based encryption scheme: a trusted authority
// runs Setup once, Extract derives a user's private key from their
// identity string, and Encrypt/Decrypt work against an identity
// directly rather than a per-user public key.
type IBE interface {
	Extract(ctx context.Context, identity []byte) ([]byte, error)
	Encrypt(ctx context.Context, identity, plaintext []byte) ([]byte, error)
	Decrypt(userKey, ciphertext []byte) ([]byte, error)
}
