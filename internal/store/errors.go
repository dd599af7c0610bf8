package store

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/storefront-banners/internal/errs"
)

// readErr maps a Firestore read failure onto the errs taxonomy.
func readErr(err error, notFound, message string) error {
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError(notFound)
	}
	return errs.NewDatabaseError("read", message, err)
}
