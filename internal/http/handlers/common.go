package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/query"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid JSON payload: "+err.Error(), nil)
		return false
	}
	return true
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_"+name, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// listParams reads _page, _size and _order; every other query key is a filter.
func listParams(c *gin.Context) (domain.ListParams, bool) {
	q := c.Request.URL.Query()
	p := domain.ListParams{
		Page:    domain.ParsePositiveInt(q.Get(query.KeyPage), 1),
		Size:    domain.ParsePositiveInt(q.Get(query.KeySize), domain.DefaultPageSize),
		Order:   q.Get(query.KeyOrder),
		Filters: map[string]string{},
	}
	if err := query.ValidateOrder(p.Order); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_order", "invalid _order: "+err.Error(), nil)
		return p, false
	}
	for key, values := range q {
		switch key {
		case query.KeyPage, query.KeySize, query.KeyOrder:
			continue
		}
		if len(values) > 0 {
			p.Filters[key] = values[0]
		}
	}
	return p.Normalize(), true
}
