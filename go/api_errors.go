package ordersserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	orderapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

var responder = apierrors.NewResponder(mapOrderError)

// fieldErrors names the form field each validation sentinel belongs to.
var fieldErrors = []struct {
	field string
	err   error
}{
	{"title", domain.ErrTitleRequired},
	{"description", domain.ErrDescriptionRequired},
	{"quantity", domain.ErrInvalidQuantity},
	{"price", domain.ErrInvalidPrice},
	{"orderDate", domain.ErrInvalidDate},
	{"deliveryDate", domain.ErrDeliveryBeforeOrder},
	{"status", domain.ErrInvalidStatus},
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		problem := apierrors.ErrValidation.WithDetail(err.Error())
		for _, fe := range fieldErrors {
			if errors.Is(err, fe.err) {
				problem = problem.WithField(fe.field, fe.err.Error())
			}
		}
		return problem, true
	}
	return apierrors.ProblemDetail{}, false
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}
