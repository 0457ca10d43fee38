package services

import (
	"errors"
	"fmt"

	"github.com/ericmlantz/backend/internal/common"
)

// storageError passes the repository taxonomy through and folds everything
// else into common.ErrorInternal, keeping the cause in the message for logs.
func storageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorValidation):
		return err
	default:
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
}
