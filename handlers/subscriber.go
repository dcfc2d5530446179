package handlers

import (
	"net/http"

	"github.com/2HgO/subscriber-requests-go/errors"
	"github.com/2HgO/subscriber-requests-go/services"
	"github.com/2HgO/subscriber-requests-go/types/requests"
	"github.com/2HgO/subscriber-requests-go/utils"
	"go.uber.org/zap"
)

type SubscriberHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewSubscriberHandler(subscriberService services.SubscriberService, middlewares MiddleWareHandler, log *zap.Logger) SubscriberHandler {
	return &subscriberHandler{
		handler: handler{subscriberService: subscriberService, middlewares: middlewares, log: log},
	}
}

type subscriberHandler struct {
	handler
}

func (s *subscriberHandler) ServeHttp(mux *http.ServeMux) {
	mux.Handle("POST /create_request", s.middlewares.RequireContentType(http.HandlerFunc(s.CreateRequest)))
}

func (s *subscriberHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req requests.CreateSubscriberRequest
	err := utils.Bind(w, r, &req)
	if err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := s.subscriberService.CreateRequest(r.Context(), req)
	if err != nil {
		appErr := errors.AsAppError(err)
		if appErr.Code < http.StatusInternalServerError {
			s.log.Debug("rejected subscriber request", zap.String("request_id", RequestID(r.Context())), zap.Error(appErr))
		}
		appErr.Serialize(w)
		return
	}

	utils.JSON(w, http.StatusOK, res)
}
