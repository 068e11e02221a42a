package arweave

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/go-jose/go-jose/v4"
)

// Wallet is an Arweave RSA keypair loaded from a JWK keyfile.
// It is immutable after LoadWallet and safe for concurrent use.
type Wallet struct {
	key     *rsa.PrivateKey
	owner   []byte
	address string
}

// LoadWallet parses an Arweave JWK keyfile.
func LoadWallet(jwkJSON []byte) (*Wallet, error) {
	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(jwkJSON); err != nil {
		return nil, fmt.Errorf("parse jwk: %w", err)
	}
	key, ok := jwk.Key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("jwk is not an RSA private key (got %T)", jwk.Key)
	}
	return NewWallet(key), nil
}

func NewWallet(key *rsa.PrivateKey) *Wallet {
	owner := key.PublicKey.N.Bytes()
	sum := sha256.Sum256(owner)
	return &Wallet{
		key:     key,
		owner:   owner,
		address: base64.RawURLEncoding.EncodeToString(sum[:]),
	}
}

// Address is base64url(sha256(modulus)).
func (w *Wallet) Address() string { return w.address }

// Owner is the raw public modulus.
func (w *Wallet) Owner() []byte { return w.owner }

func (w *Wallet) PublicKey() *rsa.PublicKey { return &w.key.PublicKey }

// Sign produces an RSA-PSS SHA-256 signature over msg.
func (w *Wallet) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	return rsa.SignPSS(rand.Reader, w.key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: 32,
		Hash:       crypto.SHA256,
	})
}

// Verify checks a signature produced by Sign against the given owner modulus.
func Verify(owner []byte, msg, sig []byte) error {
	pub := &rsa.PublicKey{N: new(big.Int).SetBytes(owner), E: 65537}
	digest := sha256.Sum256(msg)
	return rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, &rsa.PSSOptions{
		SaltLength: 32,
		Hash:       crypto.SHA256,
	})
}
