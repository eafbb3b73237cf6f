package handlers

import (
	"net/http"
	"strconv"

	"attio-sync/database"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

func (h *Handler) GetCompanies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	companies, err := h.store.ListCompanies(c.Request.Context(), database.CompanyFilter{
		Stage:       c.Query("stage"),
		Fund:        c.Query("fund"),
		Responsible: c.Query("responsible"),
		Limit:       limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, companies)
}

func (h *Handler) GetCompany(c *gin.Context) {
	idAttio := c.Param("id_attio")

	company, found, err := h.store.GetCompany(c.Request.Context(), idAttio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *Handler) GetFastTracks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unlinked, _ := strconv.ParseBool(c.DefaultQuery("unlinked", "false"))

	tracks, err := h.store.ListFastTracks(c.Request.Context(), database.FastTrackFilter{
		Status:    c.Query("status"),
		Urgency:   c.Query("urgency"),
		CompanyID: c.Query("company"),
		Unlinked:  unlinked,
		Limit:     limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tracks)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Healthz(c *gin.Context) {
	sqlDB, err := h.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		klog.FromContext(c.Request.Context()).Error(err, "database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
