package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/emberworks/storefront-backend/api/middleware"
	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
)

// currentUserID extracts the authenticated user from the request context.
func currentUserID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
