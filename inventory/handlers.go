package inventory

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/user/stockview-go/apperror"
	"github.com/user/stockview-go/auth"
)

// Handlers serves the inventory listing.
type Handlers struct {
	service *Service
}

// NewHandlers creates inventory Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleListOrders godoc
// @Summary List stock
// @Description Returns one page of the stock view, scoped to the caller's customer.
// @Description Unknown sort fields fall back to Codice; unknown directions to DESC.
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" minimum(0)
// @Param size query int false "Page size, at most 20" minimum(0)
// @Param sorting_field query string false "Column to sort by" default(Codice)
// @Param sorting_dir query string false "ASC or DESC" default(DESC)
// @Success 200 {object} inventory.PageResult
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - page or size is not a non-negative integer"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - Account has no customer and unscoped listing is disabled"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Failure 503 {object} apperror.ErrorResponse "Inventory source busy"
// @Router /api/orders [get]
func (h *Handlers) HandleListOrders() auth.PrincipalHandler {
	return func(w http.ResponseWriter, r *http.Request, user *auth.User) {
		q, err := parsePageQuery(r.URL.Query())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		result, err := h.service.List(r.Context(), user, q)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, result)
	}
}

func parsePageQuery(values url.Values) (PageQuery, error) {
	page, err := nonNegative(values, "page")
	if err != nil {
		return PageQuery{}, err
	}
	size, err := nonNegative(values, "size")
	if err != nil {
		return PageQuery{}, err
	}
	return PageQuery{
		Page:      page,
		Size:      size,
		SortField: ParseColumn(values.Get("sorting_field")),
		SortDir:   ParseDirection(values.Get("sorting_dir")),
	}, nil
}

// nonNegative reads an optional integer parameter; absent or empty is 0.
func nonNegative(values url.Values, key string) (int64, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, apperror.NewBadRequestError("invalid value for '"+key+"': expected a non-negative integer", err)
	}
	return n, nil
}
