package service

import (
	"context"
	"crypto/dsa" //nolint:staticcheck // DSA keypairs are a supported record algorithm
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	apperrors "github.com/allisson/keyvault/internal/errors"
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

const (
	pemTypePublicKey       = "PUBLIC KEY"
	pemTypePrivateKey      = "PRIVATE KEY"
	pemTypeECPrivateKey    = "EC PRIVATE KEY"
	defaultRSAKeyBits      = 4096
	defaultDSAParameterSet = dsa.L2048N256
)

// keyPairGenerator generates RSA, DSA and secp256k1 keypairs.
type keyPairGenerator struct {
	random   io.Reader
	rsaBits  int
	dsaSizes dsa.ParameterSizes
}

// NewKeyPairGenerator creates a generator producing RSA-4096, DSA L2048/N256 and
// secp256k1 keypairs from crypto/rand.
func NewKeyPairGenerator() KeyPairGenerator {
	return &keyPairGenerator{
		random:   rand.Reader,
		rsaBits:  defaultRSAKeyBits,
		dsaSizes: defaultDSAParameterSet,
	}
}

// Generate dispatches to the strategy of alg.
func (g *keyPairGenerator) Generate(ctx context.Context, alg keysDomain.Algorithm) (*KeyPair, error) {
	var generate func() (*KeyPair, error)

	switch alg {
	case keysDomain.AlgorithmRSA:
		generate = g.generateRSA
	case keysDomain.AlgorithmDSA:
		generate = g.generateDSA
	case keysDomain.AlgorithmECC:
		generate = g.generateECC
	default:
		return nil, keysDomain.ErrInvalidAlgorithm
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return generate()
}

// DerivePublicKey parses a PEM private key of alg and returns its PEM public key.
func (g *keyPairGenerator) DerivePublicKey(alg keysDomain.Algorithm, privateKeyPEM []byte) (string, error) {
	var der []byte

	switch alg {
	case keysDomain.AlgorithmRSA:
		block, err := decodePEM(privateKeyPEM, pemTypePrivateKey)
		if err != nil {
			return "", err
		}
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return "", apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, err.Error())
		}
		privateKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return "", apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "not an RSA private key")
		}
		der, err = x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to marshal rsa public key")
		}

	case keysDomain.AlgorithmDSA:
		block, err := decodePEM(privateKeyPEM, pemTypePrivateKey)
		if err != nil {
			return "", err
		}
		privateKey, err := parseDSAPrivateKey(block.Bytes)
		if err != nil {
			return "", err
		}
		der, err = marshalDSAPublicKey(&privateKey.PublicKey)
		if err != nil {
			return "", err
		}

	case keysDomain.AlgorithmECC:
		block, err := decodePEM(privateKeyPEM, pemTypeECPrivateKey)
		if err != nil {
			return "", err
		}
		privateKey, err := parseSecp256k1PrivateKey(block.Bytes)
		if err != nil {
			return "", err
		}
		der, err = marshalSecp256k1PublicKey(privateKey.PubKey())
		if err != nil {
			return "", err
		}

	default:
		return "", keysDomain.ErrInvalidAlgorithm
	}

	return encodePEM(pemTypePublicKey, der), nil
}

func (g *keyPairGenerator) generateRSA() (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(g.random, g.rsaBits)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate rsa key")
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal rsa public key")
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal rsa private key")
	}
	defer keysDomain.Zero(privateDER)

	return &KeyPair{
		PublicKey:  encodePEM(pemTypePublicKey, publicDER),
		PrivateKey: pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: privateDER}),
	}, nil
}

func (g *keyPairGenerator) generateDSA() (*KeyPair, error) {
	var privateKey dsa.PrivateKey
	if err := dsa.GenerateParameters(&privateKey.Parameters, g.random, g.dsaSizes); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate dsa parameters")
	}
	if err := dsa.GenerateKey(&privateKey, g.random); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate dsa key")
	}

	publicDER, err := marshalDSAPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, err
	}

	privateDER, err := marshalDSAPrivateKey(&privateKey)
	if err != nil {
		return nil, err
	}
	defer keysDomain.Zero(privateDER)

	return &KeyPair{
		PublicKey:  encodePEM(pemTypePublicKey, publicDER),
		PrivateKey: pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: privateDER}),
	}, nil
}

func (g *keyPairGenerator) generateECC() (*KeyPair, error) {
	privateKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate secp256k1 key")
	}
	defer privateKey.Zero()

	publicDER, err := marshalSecp256k1PublicKey(privateKey.PubKey())
	if err != nil {
		return nil, err
	}

	privateDER, err := marshalSecp256k1PrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer keysDomain.Zero(privateDER)

	return &KeyPair{
		PublicKey:  encodePEM(pemTypePublicKey, publicDER),
		PrivateKey: pem.EncodeToMemory(&pem.Block{Type: pemTypeECPrivateKey, Bytes: privateDER}),
	}, nil
}

func encodePEM(blockType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}

func decodePEM(data []byte, expectedType string) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "no PEM block found")
	}
	if block.Type != expectedType {
		return nil, apperrors.Wrap(keysDomain.ErrInvalidKeyEncoding, "unexpected PEM block type "+block.Type)
	}
	return block, nil
}
