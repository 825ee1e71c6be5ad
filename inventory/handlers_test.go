package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListOrders(t *testing.T) {
	svc, mock := newMockService(t, testConfig())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WithArgs("ACME").
		WillReturnRows(sqlmock.NewRows([]string{""}).AddRow(int64(12)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY Peso ASC")).WithArgs("ACME", int64(5), int64(5)).
		WillReturnRows(sqlmock.NewRows(viewColumns).AddRow(sheetRow("P-6")...))

	req := httptest.NewRequest(http.MethodGet, "/api/orders?page=2&size=5&sorting_field=peso&sorting_dir=asc", nil)
	rec := httptest.NewRecorder()
	NewHandlers(svc).HandleListOrders()(rec, req, tenantUser("ACME"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["current_page"])
	assert.EqualValues(t, 3, body["total_pages"])
	assert.EqualValues(t, 12, body["total_count"])

	results := body["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "P-6", first["codice"])
	assert.EqualValues(t, 1500.5, first["dimX"])
	assert.Nil(t, first["udata2"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleListOrders_EmptyResultsIsArray(t *testing.T) {
	svc, mock := newMockService(t, testConfig())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{""}).AddRow(int64(0)))

	rec := httptest.NewRecorder()
	NewHandlers(svc).HandleListOrders()(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil), tenantUser("ACME"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[],"current_page":0,"total_pages":0,"total_count":0}`, rec.Body.String())
}

func TestHandleListOrders_BadParams(t *testing.T) {
	svc, mock := newMockService(t, testConfig())
	h := NewHandlers(svc).HandleListOrders()

	for _, qs := range []string{"page=abc", "size=-1", "page=-2", "size=1.5", "page=99999999999999999999"} {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/api/orders?"+qs, nil), tenantUser("ACME"))

		assert.Equal(t, http.StatusBadRequest, rec.Code, qs)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "fail", body["status"])
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing reaches the source")
}

func TestHandleListOrders_HostileSortFallsBack(t *testing.T) {
	svc, mock := newMockService(t, testConfig())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{""}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY Codice DESC OFFSET")).
		WillReturnRows(sqlmock.NewRows(viewColumns))

	req := httptest.NewRequest(http.MethodGet, "/api/orders?sorting_field=Codice%3B%20DROP%20TABLE%20users&sorting_dir=up", nil)
	rec := httptest.NewRecorder()
	NewHandlers(svc).HandleListOrders()(rec, req, tenantUser("ACME"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParsePageQuery_Defaults(t *testing.T) {
	q, err := parsePageQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, PageQuery{SortField: DefaultColumn, SortDir: Desc}, q)
}
