package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// bindAndValidate decodes the request body into payload and runs the validator on it.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil)
	}
	return ctx.Validate(payload)
}

// currentUserID is the authenticated user, or "" on unauthenticated routes.
func currentUserID(ctx echo.Context) string {
	id, _ := utils.GetUserIDFromCtx(ctx.Request().Context())
	return id
}

// actingUserID is the user a write is recorded under. Admins and managers may record on behalf of
// someone else; for everybody else the claimed id is replaced by the caller.
func actingUserID(ctx echo.Context, claimed string) string {
	caller := currentUserID(ctx)
	if claimed == "" || claimed == caller {
		return caller
	}
	role, _ := utils.GetUserRoleFromCtx(ctx.Request().Context())
	if entities.UserRole(role).CanManage() {
		return claimed
	}
	return caller
}

func requireParam(ctx echo.Context, name string) (string, error) {
	v := ctx.Param(name)
	if v == "" {
		return "", apperrors.NewHttpError(http.StatusBadRequest, name+" parameter required", nil, nil)
	}
	return v, nil
}
