package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geomark/geomark/pkg/metrics"
)

// ErrorKind is the closed set of domain failure classes. Every handler-level
// failure maps onto one of these; the envelopes below are the only error
// shapes clients ever see for domain errors.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota
	KindNotFound
	// KindUnprocessable is reserved for validation failures in a future
	// revision; no handler emits it today.
	KindUnprocessable
)

func (k ErrorKind) status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func (k ErrorKind) message() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unable to process"
	}
	return "bad_request"
}

// Fail writes the canonical error envelope for the kind.
func Fail(c *gin.Context, kind ErrorKind) {
	status := kind.status()
	metrics.RequestsTotal.WithLabelValues(c.FullPath(), strconv.Itoa(status)).Inc()
	c.JSON(status, gin.H{
		"success": false,
		"error":   status,
		"message": kind.message(),
	})
}

// OK writes a success envelope merged with the endpoint-specific payload.
func OK(c *gin.Context, payload gin.H) {
	metrics.RequestsTotal.WithLabelValues(c.FullPath(), "200").Inc()
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
