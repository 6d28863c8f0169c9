package ergo

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"

	"github.com/ergohunt/ergohunt/pkg/processor"
)

// Ergo mainnet P2PK address head byte: network prefix 0 (mainnet) plus
// address type 1 (pay-to-public-key).
const mainnetP2PKHead byte = 0x01

// checksumLen is the number of Blake2b-256 digest bytes appended to the
// address payload.
const checksumLen = 4

// EIP-3 derivation path constants: m/44'/429'/0'/0/index.
const (
	purposeIndex = hdkeychain.HardenedKeyStart + 44
	coinIndex    = hdkeychain.HardenedKeyStart + 429 // Ergo's registered coin type
	accountIndex = hdkeychain.HardenedKeyStart + 0
	changeIndex  = 0
)

// Deriver derives Ergo P2PK addresses from seed phrases along the EIP-3
// path. It is stateless and safe for concurrent use; Derive is a pure
// function of (phrase, count).
type Deriver struct{}

// NewDeriver creates an address deriver for mainnet.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Derive returns the first count addresses of the phrase's EIP-3
// account, ordered by derivation index.
func (d *Deriver) Derive(phrase string, count int) ([]processor.Address, error) {
	seed := bip39.NewSeed(phrase, "")
	defer zero(seed)

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("ergo: deriving master key: %w", err)
	}
	defer master.Zero()

	change, err := derivePath(master, purposeIndex, coinIndex, accountIndex, changeIndex)
	if err != nil {
		return nil, err
	}
	defer change.Zero()

	addrs := make([]processor.Address, 0, count)
	for i := 0; i < count; i++ {
		child, err := change.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("ergo: deriving address index %d: %w", i, err)
		}
		pub, err := child.ECPubKey()
		child.Zero()
		if err != nil {
			return nil, fmt.Errorf("ergo: extracting public key at index %d: %w", i, err)
		}
		addr, err := EncodeP2PK(pub.SerializeCompressed())
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, processor.Address{Value: addr, Index: uint32(i)})
	}
	return addrs, nil
}

func derivePath(key *hdkeychain.ExtendedKey, indices ...uint32) (*hdkeychain.ExtendedKey, error) {
	current := key
	for _, idx := range indices {
		next, err := current.Derive(idx)
		if current != key {
			current.Zero()
		}
		if err != nil {
			return nil, fmt.Errorf("ergo: deriving child %d: %w", idx, err)
		}
		current = next
	}
	return current, nil
}

// EncodeP2PK encodes a compressed secp256k1 public key as a mainnet
// P2PK address: Base58(head || pubkey || Blake2b-256(head || pubkey)[:4]).
func EncodeP2PK(pubKey []byte) (string, error) {
	if len(pubKey) != 33 {
		return "", fmt.Errorf("ergo: compressed public key must be 33 bytes, got %d", len(pubKey))
	}

	payload := make([]byte, 0, 1+len(pubKey)+checksumLen)
	payload = append(payload, mainnetP2PKHead)
	payload = append(payload, pubKey...)

	sum := blake2b.Sum256(payload)
	payload = append(payload, sum[:checksumLen]...)

	return base58.Encode(payload), nil
}

// DecodeP2PK decodes a mainnet P2PK address back to its public key,
// verifying the head byte, the checksum, and that the key is a valid
// point on the secp256k1 curve.
func DecodeP2PK(address string) (*btcec.PublicKey, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("ergo: decoding address: %w", err)
	}
	if len(raw) != 1+33+checksumLen {
		return nil, fmt.Errorf("ergo: unexpected address payload length %d", len(raw))
	}
	if raw[0] != mainnetP2PKHead {
		return nil, fmt.Errorf("ergo: unexpected address head byte %#x", raw[0])
	}

	body := raw[:len(raw)-checksumLen]
	sum := blake2b.Sum256(body)
	for i := 0; i < checksumLen; i++ {
		if raw[len(body)+i] != sum[i] {
			return nil, fmt.Errorf("ergo: address checksum mismatch")
		}
	}

	pub, err := btcec.ParsePubKey(raw[1 : 1+33])
	if err != nil {
		return nil, fmt.Errorf("ergo: parsing address public key: %w", err)
	}
	return pub, nil
}
