package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/user/stockview-go/apperror"
	"github.com/user/stockview-go/auth"
	"github.com/user/stockview-go/config"
)

// Service lists the stock view on behalf of authenticated users.
type Service struct {
	session       *Session
	view          string
	queryTimeout  time.Duration
	allowUnscoped bool
}

// NewService creates a Service reading cfg.View through session.
func NewService(session *Session, cfg *config.InventoryConfig) (*Service, error) {
	if !config.ValidIdentifier(cfg.View) {
		return nil, apperror.NewConfigError(fmt.Sprintf("invalid inventory view name %q", cfg.View), nil)
	}
	return &Service{
		session:       session,
		view:          cfg.View,
		queryTimeout:  cfg.QueryTimeout,
		allowUnscoped: cfg.AllowUnscoped,
	}, nil
}

// List returns one page of the rows visible to user. Rows are scoped to the user's
// customer name exactly as stored; only a user with no customer name sees every row,
// and only while unscoped listing is enabled. The count and the page are read back to
// back within one turn on the session.
func (s *Service) List(ctx context.Context, user *auth.User, q PageQuery) (*PageResult, error) {
	tenant := user.CustomerName
	if tenant == "" {
		if !s.allowUnscoped {
			return nil, apperror.NewUnauthorizedError("Your account is not linked to a customer", nil)
		}
		slog.WarnContext(ctx, "unscoped inventory listing", slog.Int64("user_id", user.ID), slog.String("role", user.Role))
	}

	var result *PageResult
	err := s.session.Do(ctx, func(ctx context.Context, conn Querier) error {
		total, err := s.count(ctx, conn, tenant)
		if err != nil {
			return err
		}

		page := Paginate(total, q)
		result = &PageResult{
			Results:     []InventoryRow{},
			CurrentPage: page.Number,
			TotalPages:  page.TotalPages,
			TotalCount:  total,
		}
		if page.TotalPages == 0 {
			return nil
		}

		rows, err := s.fetch(ctx, conn, pageQuery(s.view, tenant, q.column(), q.direction(), page.Offset, page.Size))
		if err != nil {
			return err
		}
		result.Results = rows
		return nil
	})
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, apperror.NewCanceledError("Request canceled", err)
		}
		return nil, apperror.NewDatabaseError("Database error", err)
	}
	return result, nil
}

// Ping runs a trivial query on the session, waiting its turn like any request.
func (s *Service) Ping(ctx context.Context) error {
	return s.session.Do(ctx, func(ctx context.Context, conn Querier) error {
		var one int
		return conn.QueryRowxContext(ctx, "SELECT 1").Scan(&one)
	})
}

func (s *Service) count(ctx context.Context, conn Querier, tenant string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	// No row and a NULL count both mean an empty view.
	stmt := countQuery(s.view, tenant)
	var total sql.NullInt64
	err := conn.QueryRowxContext(ctx, stmt.text, stmt.args...).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count inventory rows: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}

func (s *Service) fetch(ctx context.Context, conn Querier, stmt statement) ([]InventoryRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := conn.QueryxContext(ctx, stmt.text, stmt.args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory page: %w", err)
	}
	defer rows.Close()

	out := []InventoryRow{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out = append(out, rowFromValues(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory rows: %w", err)
	}
	return out, nil
}

func (q PageQuery) column() Column {
	if q.SortField == (Column{}) {
		return DefaultColumn
	}
	return q.SortField
}

func (q PageQuery) direction() Direction {
	if q.SortDir != Asc {
		return Desc
	}
	return Asc
}

// rowFromValues maps a row in `columns` order. Missing trailing values stay null.
func rowFromValues(v []any) InventoryRow {
	at := func(i int) any {
		if i < len(v) {
			return v[i]
		}
		return nil
	}
	return InventoryRow{
		Codice:    asString(at(0)),
		Materiale: asString(at(1)),
		Spessore:  asFloat(at(2)),
		DimX:      asFloat(at(3)),
		DimY:      asFloat(at(4)),
		Area:      asFloat(at(5)),
		Peso:      asFloat(at(6)),
		Ritaglio:  asUint8(at(7)),
		Qta:       asInt32(at(8)),
		Udata1:    asString(at(9)),
		Udata2:    asString(at(10)),
		Udata3:    asString(at(11)),
	}
}

func asString(v any) *string {
	switch t := v.(type) {
	case string:
		return &t
	case []byte:
		s := string(t)
		return &s
	}
	return nil
}

// asFloat also accepts the []byte the driver returns for DECIMAL and NUMERIC columns.
func asFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case int:
		f = float64(t)
	case []byte:
		parsed, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int16:
		return int64(t), true
	case uint8:
		return int64(t), true
	case int:
		return int64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t), true
		}
	case []byte:
		n, err := strconv.ParseInt(string(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func asUint8(v any) *uint8 {
	n, ok := asInt64(v)
	if !ok || n < 0 || n > math.MaxUint8 {
		return nil
	}
	u := uint8(n)
	return &u
}

func asInt32(v any) *int32 {
	n, ok := asInt64(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return nil
	}
	i := int32(n)
	return &i
}
