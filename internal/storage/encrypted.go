package storage

import (
	"fmt"

	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/secure"
)

// Encrypted wraps a Provider so that parameter names and goal values are
// encrypted before they are written and decrypted after they are read.
// Everything else passes through to the wrapped Provider.
type Encrypted struct {
	Provider
	cipher *secure.Cipher
}

// NewEncrypted returns a Provider that encrypts parameter fields with c.
func NewEncrypted(inner Provider, c *secure.Cipher) *Encrypted {
	return &Encrypted{Provider: inner, cipher: c}
}

func (e *Encrypted) seal(p models.Parameter) (models.Parameter, error) {
	var err error
	if p.Name, err = e.cipher.Encrypt(p.Name); err != nil {
		return models.Parameter{}, fmt.Errorf("encrypting parameter name: %w", err)
	}
	if p.GoalValue, err = e.cipher.Encrypt(p.GoalValue); err != nil {
		return models.Parameter{}, fmt.Errorf("encrypting goal value: %w", err)
	}
	return p, nil
}

func (e *Encrypted) open(p models.Parameter) (models.Parameter, error) {
	var err error
	if p.Name, err = e.cipher.Decrypt(p.Name); err != nil {
		return models.Parameter{}, fmt.Errorf("decrypting name of parameter %s: %w", p.ID, err)
	}
	if p.GoalValue, err = e.cipher.Decrypt(p.GoalValue); err != nil {
		return models.Parameter{}, fmt.Errorf("decrypting goal value of parameter %s: %w", p.ID, err)
	}
	return p, nil
}

func (e *Encrypted) AddParameter(p models.Parameter) error {
	sealed, err := e.seal(p)
	if err != nil {
		return err
	}
	return e.Provider.AddParameter(sealed)
}

func (e *Encrypted) UpdateParameter(p models.Parameter) error {
	sealed, err := e.seal(p)
	if err != nil {
		return err
	}
	return e.Provider.UpdateParameter(sealed)
}

func (e *Encrypted) GetParameter(id string) (models.Parameter, error) {
	p, err := e.Provider.GetParameter(id)
	if err != nil {
		return models.Parameter{}, err
	}
	return e.open(p)
}

// GetParameterByName decrypts every live parameter and matches in memory,
// since ciphertexts of equal names differ.
func (e *Encrypted) GetParameterByName(name string) (models.Parameter, error) {
	all, err := e.GetAllParameters(false)
	if err != nil {
		return models.Parameter{}, err
	}
	for _, p := range all {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Parameter{}, fmt.Errorf("parameter %q: %w", name, ErrNotFound)
}

func (e *Encrypted) GetAllParameters(includeDeleted bool) ([]models.Parameter, error) {
	all, err := e.Provider.GetAllParameters(includeDeleted)
	if err != nil {
		return nil, err
	}
	out := make([]models.Parameter, 0, len(all))
	for _, p := range all {
		opened, err := e.open(p)
		if err != nil {
			return nil, err
		}
		out = append(out, opened)
	}
	return out, nil
}

// Unwrap returns the Provider underneath any encryption decorator.
func Unwrap(p Provider) Provider {
	for {
		e, ok := p.(*Encrypted)
		if !ok {
			return p
		}
		p = e.Provider
	}
}
