package service

import (
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// wrapperManager resolves wrap algorithms to their Wrapper.
type wrapperManager struct {
	cbc Wrapper
	gcm Wrapper
}

// NewWrapperManager creates a WrapperManager for AES-256-CBC and AES-256-GCM.
func NewWrapperManager() WrapperManager {
	return &wrapperManager{
		cbc: NewAESCBCWrapper(),
		gcm: NewAESGCMWrapper(),
	}
}

// Wrapper returns ErrUnsupportedWrapAlgorithm for unknown algorithms.
func (m *wrapperManager) Wrapper(alg keysDomain.WrapAlgorithm) (Wrapper, error) {
	switch alg {
	case keysDomain.WrapAESCBC:
		return m.cbc, nil
	case keysDomain.WrapAESGCM:
		return m.gcm, nil
	default:
		return nil, keysDomain.ErrUnsupportedWrapAlgorithm
	}
}
