package handler

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"marketlens/internal/collection"
	"marketlens/internal/shopconnect"
	"marketlens/internal/types"
)

var errInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidArgument, fmt.Sprintf(format, args...))
}

func codeOf(err error) connect.Code {
	var ce *connect.Error
	switch {
	case errors.As(err, &ce):
		return ce.Code()
	case errors.Is(err, errInvalidArgument),
		errors.Is(err, types.ErrEmptyInput),
		errors.Is(err, collection.ErrEmptyShopName),
		errors.Is(err, collection.ErrEmptyListName),
		errors.Is(err, collection.ErrEmptyKeyword),
		errors.Is(err, collection.ErrEmptyKey),
		errors.Is(err, shopconnect.ErrEmptyShop):
		return connect.CodeInvalidArgument
	case errors.Is(err, collection.ErrListNotFound),
		errors.Is(err, shopconnect.ErrUnknownToken):
		return connect.CodeNotFound
	case errors.Is(err, shopconnect.ErrTokenExpired):
		return connect.CodeFailedPrecondition
	default:
		return connect.CodeInternal
	}
}

func toConnectError(err error) error {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}
	return connect.NewError(codeOf(err), err)
}
