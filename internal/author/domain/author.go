package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Author representa a un autor de la redacción.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuthor crea un autor validando el nombre.
func NewAuthor(name string) (*Author, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Author{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Rename cambia el nombre del autor, con la misma validación.
func (a *Author) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	a.Name = strings.TrimSpace(name)
	return nil
}

// ValidateName exige un nombre no vacío.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidAuthorName
	}
	return nil
}
