package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	querybus "github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	"github.com/zaheyak/Content-Studio-sub000/pkg/common"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// base carries what every handler needs: the buses, the error writer and
// the request body limit
type base struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errors       *pkgerrors.ErrorHandler
	maxBodyBytes int64
	logger       *zap.Logger
}

func newBase(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errHandler *pkgerrors.ErrorHandler, maxBodyBytes int64, logger *zap.Logger) base {
	if maxBodyBytes <= 0 {
		maxBodyBytes = common.DefaultMaxBodyBytes
	}
	return base{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errors:       errHandler,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// decode reads a JSON body. Oversized and malformed bodies are validation
// errors.
func (b base) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := common.ParseJSONBody(w, r, v, b.maxBodyBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pkgerrors.NewValidationError("request body too large").
				WithDetail("limit", tooLarge.Limit)
		}
		return pkgerrors.NewValidationError("invalid request body").WithCause(err)
	}
	return nil
}

func (b base) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	common.RespondWithMeta(w, status, data, &common.MetaInfo{RequestID: common.ExtractRequestID(r)})
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	b.errors.Handle(w, r, err)
}
