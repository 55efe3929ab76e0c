package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"jeongsql/internal/messages"
	"jeongsql/internal/model"
	"jeongsql/internal/query"
	"jeongsql/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the SQL endpoints against a single database.
type Handler struct {
	db     service.DBClient
	logger *slog.Logger
}

// New creates a handler. db may be nil, in which case every statement is
// answered with 503.
func New(db service.DBClient, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{db: db, logger: logger}
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// ReadQueryHandler serves GET /sql/*query. The statement is the decoded path
// remainder and must be a SELECT.
func (h *Handler) ReadQueryHandler(c *gin.Context) {
	q := query.Normalize(strings.TrimPrefix(c.Param("query"), "/"))
	if query.Classify(q) != query.Read {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.InvalidQuery})
		return
	}

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No active database connection"})
		return
	}

	h.logger.InfoContext(c.Request.Context(), "executing query", "query", q, "request_id", c.GetString(requestIDKey))
	columns, values, err := h.db.RunQuery(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.NewRows(columns, values))
}

// WriteQueryHandler serves POST /sql with a QueryRequest body holding an
// INSERT statement.
func (h *Handler) WriteQueryHandler(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	q := query.Normalize(req.Query)
	if query.Classify(q) != query.Write {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.InvalidQuery})
		return
	}

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No active database connection"})
		return
	}

	h.logger.InfoContext(c.Request.Context(), "executing statement", "query", q, "request_id", c.GetString(requestIDKey))
	n, err := h.db.Exec(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ExecResponse{Message: "Query executed successfully", RowsAffected: n})
}

// InsertDummyHandler serves POST /insert-dummy. Without a body it inserts the
// fixed patient rows itself; with a QueryRequest body it runs that single
// INSERT, which is how clients that enumerate the rows call it.
func (h *Handler) InsertDummyHandler(c *gin.Context) {
	statements := model.DummyPatientInserts

	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		var req model.QueryRequest
		err := c.ShouldBindJSON(&req)
		switch {
		case errors.Is(err, io.EOF):
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		default:
			q := query.Normalize(req.Query)
			if query.Classify(q) != query.Write {
				c.JSON(http.StatusBadRequest, gin.H{"error": messages.InvalidQuery})
				return
			}
			statements = []string{q}
		}
	}

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No active database connection"})
		return
	}

	var total int64
	for _, stmt := range statements {
		n, err := h.db.Exec(c.Request.Context(), stmt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		total += n
	}

	h.logger.InfoContext(c.Request.Context(), "seeded dummy rows", "statements", len(statements), "rows_affected", total)
	c.JSON(http.StatusOK, model.ExecResponse{Message: messages.InsertSuccess, RowsAffected: total})
}
