package handlers

import (
	"net/http"

	"github.com/2HgO/subscriber-requests-go/services"
	"go.uber.org/zap"
)

type handler struct {
	subscriberService services.SubscriberService
	middlewares       MiddleWareHandler

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
