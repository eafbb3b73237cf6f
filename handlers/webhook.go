package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"attio-sync/ingest"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

const maxWebhookBody = 1 << 20

// Webhook accepts an Attio delivery and processes its first event. Failures
// while syncing are logged and the delivery is still acknowledged.
func (h *Handler) Webhook(c *gin.Context) {
	ctx := c.Request.Context()
	log := klog.FromContext(ctx)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": "unreadable body"})
		return
	}

	if h.secret != "" && !validSignature(h.secret, body, signatureHeader(c)) {
		log.Info("rejecting webhook with bad signature")
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "reason": "invalid signature"})
		return
	}

	payload, err := h.matcher.Parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": "invalid json"})
		return
	}

	ev := payload.First()
	if ev == nil {
		c.JSON(http.StatusOK, gin.H{"status": "empty payload"})
		return
	}
	if payload.Dropped > 0 {
		log.Info("dropping extra events in delivery", "dropped", payload.Dropped)
	}
	log.Info("received event", "eventType", ev.EventType(), "id", ingest.TargetID(ev))

	outcome, err := h.router.Dispatch(ctx, ev)
	if err != nil {
		log.Error(err, "event not synced", "outcome", outcome)
	}

	if outcome == ingest.OutcomeRejected {
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "reason": "not workspace member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted", "outcome": outcome})
}

func signatureHeader(c *gin.Context) string {
	if sig := c.GetHeader("Attio-Signature"); sig != "" {
		return sig
	}
	return c.GetHeader("X-Attio-Signature")
}

// validSignature checks a hex HMAC-SHA256 of body keyed with secret.
func validSignature(secret string, body []byte, signature string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(got) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
