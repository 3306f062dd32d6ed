package handlers

import (
	"net/http"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/services/sync"

	"github.com/gin-gonic/gin"
)

// statusForKind maps a command error kind to an HTTP status code.
func statusForKind(kind remoteRepo.ErrorKind) int {
	switch kind {
	case remoteRepo.KindOffline:
		return http.StatusServiceUnavailable
	case remoteRepo.KindValidation:
		return http.StatusBadRequest
	case remoteRepo.KindAuth:
		return http.StatusUnauthorized
	case remoteRepo.KindNetwork, remoteRepo.KindServer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respond writes a command result with the status code its kind implies.
// The body is always the full result so clients read one shape.
func respond(c *gin.Context, res sync.Result) {
	if res.Success {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(statusForKind(res.Error), res)
}
