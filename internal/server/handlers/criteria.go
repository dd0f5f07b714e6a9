package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// defaultWindowDays is the number of days selected when the request names no range.
const defaultWindowDays = 30

var criteriaParams = map[string]models.Attribute{
	"farm":       models.AttrFarm,
	"shed":       models.AttrShed,
	"age":        models.AttrAge,
	"breed":      models.AttrBreed,
	"client":     models.AttrClient,
	"metaqualix": models.AttrMetaqualix,
}

// parseCriteria reads filter criteria from the query string. Without from and
// to the last 30 days are selected; an explicitly empty bound is open.
func (h *Handler) parseCriteria(c *gin.Context) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{Match: make(map[models.Attribute]string)}

	from, hasFrom := c.GetQuery("from")
	to, hasTo := c.GetQuery("to")
	if !hasFrom && !hasTo {
		y, m, d := h.now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		criteria.Start = today.AddDate(0, 0, -defaultWindowDays)
		criteria.End = today
	} else {
		var err error
		if criteria.Start, err = parseDay(from); err != nil {
			return criteria, fmt.Errorf("from: %w", err)
		}
		if criteria.End, err = parseDay(to); err != nil {
			return criteria, fmt.Errorf("to: %w", err)
		}
	}

	for param, attr := range criteriaParams {
		if v := c.Query(param); !models.IsWildcard(v) {
			criteria.Match[attr] = v
		}
	}
	return criteria, nil
}

func parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", v)
	}
	return t, nil
}

// withCriteria parses the criteria or aborts the request with 400.
func (h *Handler) withCriteria(c *gin.Context) (models.FilterCriteria, bool) {
	criteria, err := h.parseCriteria(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Filtro de fechas inválido: "+err.Error(), err)
		return criteria, false
	}
	return criteria, true
}
