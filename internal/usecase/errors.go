package usecase

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// wrapRepoErr classifies a repository failure. A missing dataset means the
// service is not ready yet rather than broken.
func wrapRepoErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dataset.ErrNotLoaded) || crerr.Is(err, dataset.ErrInvalidData) {
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
