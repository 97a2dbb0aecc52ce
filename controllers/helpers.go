package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/moderation"
	"github.com/GraceHarbor/store"
)

func recordStore() store.RecordStore {
	return initializers.Store()
}

func currentProfile(c *gin.Context) models.Profile {
	return c.MustGet("currentUser").(models.Profile)
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError logs err and maps it onto the HTTP error taxonomy.
func respondError(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError

	var (
		illegal   *lifecycle.IllegalTransitionError
		threshold *moderation.ThresholdError
		unknown   *moderation.UnknownStatusError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &unknown):
		status = http.StatusBadRequest
	case errors.As(err, &illegal), errors.As(err, &threshold), errors.Is(err, moderation.ErrResponseRequired):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, moderation.ErrStale):
		status = http.StatusConflict
	case store.IsUniqueViolation(err), store.IsForeignKeyViolation(err):
		status = http.StatusConflict
	}

	ev := log.Warn()
	if status == http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("path", c.FullPath()).Int("status", status).Msg(msg)

	c.JSON(status, gin.H{"error": msg, "details": err.Error()})
}

// respondSingleton writes the selected record, or 204 when the slot is empty.
func respondSingleton[T any](c *gin.Context, item *T) {
	if item == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, item)
}

var (
	boardsMu sync.Mutex
	boards   = map[int]*moderation.Board{}
)

// boardFor returns the queue filters of one staff member.
func boardFor(profileID int) *moderation.Board {
	boardsMu.Lock()
	defer boardsMu.Unlock()
	b, ok := boards[profileID]
	if !ok {
		b = moderation.NewBoard()
		boards[profileID] = b
	}
	return b
}

func dropBoard(profileID int) {
	boardsMu.Lock()
	defer boardsMu.Unlock()
	delete(boards, profileID)
}
