package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MadAppGang/httplog"
	lzap "github.com/MadAppGang/httplog/zap"
	"github.com/google/uuid"
	gh "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/2HgO/subscriber-requests-go/errors"
	"github.com/2HgO/subscriber-requests-go/utils"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type MiddleWareHandler interface {
	// Wrap applies the middlewares shared by every route.
	Wrap(http.Handler) http.Handler

	AssignRequestID(http.Handler) http.Handler
	LogRequest(http.Handler) http.Handler
	Recover(http.Handler) http.Handler
	RequireContentType(http.Handler) http.Handler
}

type middlewareHandler struct {
	accessLog utils.MW
	log       *zap.Logger
}

func NewMiddlewareHandler(log *zap.Logger) MiddleWareHandler {
	return &middlewareHandler{
		accessLog: httplog.LoggerWithConfig(httplog.LoggerConfig{
			RouterName: "subscriber-requests",
			Formatter:  lzap.ZapLogger(log, zap.InfoLevel, "http request"),
		}),
		log: log,
	}
}

func (m *middlewareHandler) Wrap(h http.Handler) http.Handler {
	return utils.Middleware(h, m.AssignRequestID, gh.ProxyHeaders, m.LogRequest, m.Recover)
}

func (m *middlewareHandler) AssignRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (m *middlewareHandler) LogRequest(h http.Handler) http.Handler {
	return m.accessLog(h)
}

func (m *middlewareHandler) Recover(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			var appErr errors.AppError
			switch v := rec.(type) {
			case errors.AppError:
				appErr = v
			case error:
				appErr = errors.NewFatalError(v)
			default:
				appErr = errors.NewUnknownError(v)
			}
			m.log.Error("recovered from panic",
				zap.String("request_id", RequestID(r.Context())),
				zap.String("panic", fmt.Sprintf("%v", rec)),
				zap.Stack("stack"),
			)
			appErr.Serialize(w)
		}()

		h.ServeHTTP(w, r)
	})
}

// RequireContentType rejects bodies that are neither JSON nor form encoded.
// A missing Content-Type is treated as JSON.
func (m *middlewareHandler) RequireContentType(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.ClassifyBody(r) == utils.UnsupportedBody {
			errors.NewUnsupportedMediaTypeError(r.Header.Get("Content-Type")).Serialize(w)
			return
		}
		h.ServeHTTP(w, r)
	})
}
