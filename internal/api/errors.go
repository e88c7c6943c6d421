package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/service"
)

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type errorResponse struct {
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

var errBadRequest = errors.New("invalid request body")

// classify maps an error to a status and a message safe to show to the shopper.
func classify(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, domain.ErrOutOfServiceArea):
		return http.StatusUnprocessableEntity, errorResponse{
			Message: domain.ErrOutOfServiceArea.Error(),
			Fields:  validationFields(err),
		}
	case isValidation(err):
		return http.StatusUnprocessableEntity, errorResponse{
			Message: "validation failed",
			Fields:  validationFields(err),
		}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, errorResponse{
			Message: domain.ErrInvalidQuantity.Error(),
			Fields:  []fieldError{{Field: "quantity", Reason: domain.ErrInvalidQuantity.Error()}},
		}
	case errors.Is(err, errBadRequest), errors.Is(err, service.ErrNoSession):
		return http.StatusBadRequest, errorResponse{Message: errBadRequest.Error()}
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusConflict, errorResponse{Message: domain.ErrEmptyCart.Error()}
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusConflict, errorResponse{Message: domain.ErrUnavailable.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Message: domain.ErrProductNotFound.Error()}
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized, errorResponse{Message: domain.ErrAuth.Error()}
	case errors.Is(err, domain.ErrTerminalState):
		return http.StatusConflict, errorResponse{Message: domain.ErrTerminalState.Error()}
	case errors.Is(err, domain.ErrSameStatus):
		return http.StatusConflict, errorResponse{Message: domain.ErrSameStatus.Error()}
	case errors.Is(err, domain.ErrTransition):
		return http.StatusConflict, errorResponse{Message: domain.ErrTransition.Error()}
	}

	var serr *domain.SubmissionError
	if errors.As(err, &serr) {
		return http.StatusBadGateway, errorResponse{Message: "failed to place order, please try again"}
	}

	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		return http.StatusBadGateway, errorResponse{Message: "failed to update order, please try again"}
	}

	return http.StatusInternalServerError, errorResponse{Message: "internal error"}
}

func writeError(c *gin.Context, err error) {
	status, body := classify(err)

	_ = c.Error(err)
	c.JSON(status, body)
}

func isValidation(err error) bool {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}

	var verr *domain.ValidationError
	return errors.As(err, &verr)
}

func validationFields(err error) []fieldError {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fieldError, 0, len(verrs))
		for _, v := range verrs {
			fields = append(fields, fieldError{Field: v.Field, Reason: v.Reason})
		}
		return fields
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return []fieldError{{Field: verr.Field, Reason: verr.Reason}}
	}

	return nil
}
