package service

import (
	"crypto/dsa" //nolint:staticcheck // DSA keypairs are a supported record algorithm
	"encoding/asn1"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	apperrors "github.com/allisson/keyvault/internal/errors"
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// crypto/x509 neither marshals DSA keys nor knows secp256k1, so SPKI, PKCS#8
// and SEC1 structures for those are built here.

var (
	oidPublicKeyDSA   = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}
	oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1      = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

const ecPrivateKeyVersion = 1

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

// subjectPublicKeyInfo is the RFC 5280 SubjectPublicKeyInfo.
type subjectPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

// pkcs8PrivateKey is the RFC 5208 PrivateKeyInfo (without attributes).
type pkcs8PrivateKey struct {
	Version    int
	Algorithm  algorithmIdentifier
	PrivateKey []byte
}

// dsaParameters is Dss-Parms from RFC 3279.
type dsaParameters struct {
	P, Q, G *big.Int
}

// ecPrivateKey is the RFC 5915 ECPrivateKey.
type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

func dsaAlgorithmIdentifier(params dsa.Parameters) (algorithmIdentifier, error) {
	paramsDER, err := asn1.Marshal(dsaParameters{P: params.P, Q: params.Q, G: params.G})
	if err != nil {
		return algorithmIdentifier{}, apperrors.Wrap(err, "failed to marshal dsa parameters")
	}
	return algorithmIdentifier{
		Algorithm:  oidPublicKeyDSA,
		Parameters: asn1.RawValue{FullBytes: paramsDER},
	}, nil
}

func marshalDSAPublicKey(publicKey *dsa.PublicKey) ([]byte, error) {
	algorithm, err := dsaAlgorithmIdentifier(publicKey.Parameters)
	if err != nil {
		return nil, err
	}

	y, err := asn1.Marshal(publicKey.Y)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal dsa public value")
	}

	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithm,
		PublicKey: asn1.BitString{Bytes: y, BitLength: 8 * len(y)},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal dsa public key")
	}
	return der, nil
}

func marshalDSAPrivateKey(privateKey *dsa.PrivateKey) ([]byte, error) {
	algorithm, err := dsaAlgorithmIdentifier(privateKey.Parameters)
	if err != nil {
		return nil, err
	}

	x, err := asn1.Marshal(privateKey.X)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal dsa private value")
	}
	defer keysDomain.Zero(x)

	der, err := asn1.Marshal(pkcs8PrivateKey{
		Version:    0,
		Algorithm:  algorithm,
		PrivateKey: x,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal dsa private key")
	}
	return der, nil
}

func parseDSAPrivateKey(der []byte) (*dsa.PrivateKey, error) {
	var info pkcs8PrivateKey
	if rest, err := asn1.Unmarshal(der, &info); err != nil || len(rest) != 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "malformed pkcs8 private key")
	}
	if !info.Algorithm.Algorithm.Equal(oidPublicKeyDSA) {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "not a DSA private key")
	}

	var params dsaParameters
	if rest, err := asn1.Unmarshal(info.Algorithm.Parameters.FullBytes, &params); err != nil || len(rest) != 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "malformed dsa parameters")
	}
	if params.P == nil || params.Q == nil || params.G == nil ||
		params.P.Sign() <= 0 || params.Q.Sign() <= 0 || params.G.Sign() <= 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "invalid dsa parameters")
	}

	var x *big.Int
	if rest, err := asn1.Unmarshal(info.PrivateKey, &x); err != nil || len(rest) != 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "malformed dsa private value")
	}
	if x.Sign() <= 0 || x.Cmp(params.Q) >= 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "dsa private value out of range")
	}

	privateKey := &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{P: params.P, Q: params.Q, G: params.G},
			Y:          new(big.Int).Exp(params.G, x, params.P),
		},
		X: x,
	}
	return privateKey, nil
}

func marshalSecp256k1PublicKey(publicKey *secp256k1.PublicKey) ([]byte, error) {
	curve, err := asn1.Marshal(oidSecp256k1)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal curve oid")
	}

	point := publicKey.SerializeUncompressed()
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{
			Algorithm:  oidPublicKeyECDSA,
			Parameters: asn1.RawValue{FullBytes: curve},
		},
		PublicKey: asn1.BitString{Bytes: point, BitLength: 8 * len(point)},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secp256k1 public key")
	}
	return der, nil
}

func parseSecp256k1PublicKey(der []byte) (*secp256k1.PublicKey, error) {
	var info subjectPublicKeyInfo
	if rest, err := asn1.Unmarshal(der, &info); err != nil || len(rest) != 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "malformed public key info")
	}
	if !info.Algorithm.Algorithm.Equal(oidPublicKeyECDSA) {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "not an EC public key")
	}

	var curve asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(info.Algorithm.Parameters.FullBytes, &curve); err != nil || !curve.Equal(oidSecp256k1) {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "not a secp256k1 public key")
	}

	publicKey, err := secp256k1.ParsePubKey(info.PublicKey.RightAlign())
	if err != nil {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, err.Error())
	}
	return publicKey, nil
}

func marshalSecp256k1PrivateKey(privateKey *secp256k1.PrivateKey) ([]byte, error) {
	scalar := privateKey.Serialize()
	defer keysDomain.Zero(scalar)

	point := privateKey.PubKey().SerializeUncompressed()
	der, err := asn1.Marshal(ecPrivateKey{
		Version:       ecPrivateKeyVersion,
		PrivateKey:    scalar,
		NamedCurveOID: oidSecp256k1,
		PublicKey:     asn1.BitString{Bytes: point, BitLength: 8 * len(point)},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secp256k1 private key")
	}
	return der, nil
}

func parseSecp256k1PrivateKey(der []byte) (*secp256k1.PrivateKey, error) {
	var key ecPrivateKey
	if rest, err := asn1.Unmarshal(der, &key); err != nil || len(rest) != 0 {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "malformed ec private key")
	}
	if key.Version != ecPrivateKeyVersion {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "unsupported ec private key version")
	}
	if len(key.NamedCurveOID) > 0 && !key.NamedCurveOID.Equal(oidSecp256k1) {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "not a secp256k1 private key")
	}
	if len(key.PrivateKey) == 0 || len(key.PrivateKey) > secp256k1.PrivKeyBytesLen {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "invalid secp256k1 scalar length")
	}

	privateKey := secp256k1.PrivKeyFromBytes(key.PrivateKey)
	keysDomain.Zero(key.PrivateKey)
	if privateKey.Key.IsZero() {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "invalid secp256k1 scalar")
	}
	return privateKey, nil
}
