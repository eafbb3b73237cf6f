package handlers

import (
	"attio-sync/database"
	"attio-sync/ingest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

type Handler struct {
	matcher ingest.Matcher
	router  *ingest.Router
	store   *database.Store
	secret  string
}

func New(matcher ingest.Matcher, router *ingest.Router, store *database.Store, webhookSecret string) *Handler {
	return &Handler{matcher: matcher, router: router, store: store, secret: webhookSecret}
}

// Register mounts all routes on r.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(RequestID())

	r.GET("/healthz", h.Healthz)

	// Attio webhooks
	r.POST("/attio-to-postgres", h.Webhook)
	r.POST("/webhooks/attio", h.Webhook)

	api := r.Group("/api")
	{
		api.GET("/companies", h.GetCompanies)
		api.GET("/companies/:id_attio", h.GetCompany)
		api.GET("/fast-tracks", h.GetFastTracks)
		api.GET("/stats", h.GetStats)
	}
}

// RequestID tags each request with an id and puts a logger carrying it
// into the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		ctx := c.Request.Context()
		logger := klog.FromContext(ctx).WithValues("requestID", id)
		c.Request = c.Request.WithContext(klog.NewContext(ctx, logger))
		c.Next()
	}
}
