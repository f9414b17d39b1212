package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/service"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/ws"
)

// Pinger reports storage reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Donors      *service.DonorService
	Requests    *service.RequestService
	Admin       *service.AdminService
	Ws          *ws.Ws
	DB          Pinger
	FrontendDir string
	InstanceId  string
}

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	upgrader  websocket.Upgrader

	donors   *service.DonorService
	requests *service.RequestService
	admin    *service.AdminService
	ws       *ws.Ws
	db       Pinger

	frontendDir string
	instanceId  string
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		donors:      d.Donors,
		requests:    d.Requests,
		admin:       d.Admin,
		ws:          d.Ws,
		db:          d.DB,
		frontendDir: d.FrontendDir,
		instanceId:  d.InstanceId,
	}
}

// Response is the envelope of the operator endpoints under /v1.
type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type loginResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	h.JSON(w, rsp.Code, rsp)
}

func (h *Handler) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// internalError logs the cause and answers a generic 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithField("request_id", middleware.GetReqID(r.Context())).
		Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
	h.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// badBody answers a body that could not be decoded. Nothing is written.
func (h *Handler) badBody(w http.ResponseWriter, r *http.Request, err error) {
	log.WithField("request_id", middleware.GetReqID(r.Context())).
		Warnf("%s %s rejected: %v", r.Method, r.URL.Path, err)
	h.JSON(w, http.StatusBadRequest, errorResponse{Error: errMalformedBody.Error()})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"instance_id": h.instanceId,
		"storage":     "ok",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			data["storage"] = "unavailable"
			h.CreateResponse(w, Response{
				Message: "bloodbank service is degraded",
				Code:    http.StatusServiceUnavailable,
				Data:    data,
				Error:   err.Error(),
			})
			return
		}
	}

	h.CreateResponse(w, Response{
		Message: "bloodbank service is running",
		Code:    http.StatusOK,
		Data:    data,
	})
}
