package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/kioku/internal/apperr"
	"gorm.io/gorm"
)

// storeErr maps a repository failure onto the error taxonomy: a missing row
// becomes ErrNotFound, anything else ErrStore with the cause attached.
func storeErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %v: %w", what, err, apperr.ErrStore)
}
