package dto_test

import (
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"tourbook/shared/constant"
	"tourbook/shared/dto"
	"tourbook/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt})

	if metadata.CreatedAt == "" || metadata.ModifiedAt == "" {
		t.Fatalf("expected formatted timestamps, got %+v", metadata)
	}

	parsed, err := time.Parse(constant.DateTimeFormat, metadata.CreatedAt)
	if err != nil || !parsed.Equal(createdAt) {
		t.Errorf("expected CreatedAt to represent %s, got %s", createdAt, metadata.CreatedAt)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "all valid parameters",
			queryParams:    map[string]string{"page": "2", "limit": "20", "sort_by": "title", "sort_dir": "asc", "search": " safari "},
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "title", SortDir: "ASC", Search: "safari"},
		},
		{
			name:           "defaults when absent",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "no defaults when disabled",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "non-numeric page and limit",
			queryParams:    map[string]string{"page": "abc", "limit": "ten"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:           "negative and zero values",
			queryParams:    map[string]string{"page": "-1", "limit": "0"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:           "invalid sort direction ignored",
			queryParams:    map[string]string{"sort_dir": "sideways"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for k, v := range tt.queryParams {
				values.Set(k, v)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			var q dto.QueryParams
			q.FromRequest(req, tt.defaultRequest)

			if !reflect.DeepEqual(q, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestQueryParams_SanitizeSort(t *testing.T) {
	tests := []struct {
		name    string
		params  dto.QueryParams
		wantBy  string
		wantDir string
	}{
		{name: "allowed column kept", params: dto.QueryParams{SortBy: "title", SortDir: "ASC"}, wantBy: "tours.title", wantDir: "ASC"},
		{name: "allowed column without direction", params: dto.QueryParams{SortBy: "price"}, wantBy: "tours.price", wantDir: "DESC"},
		{name: "unknown column replaced", params: dto.QueryParams{SortBy: "1; DROP TABLE tours", SortDir: "ASC"}, wantBy: "tours.created_at", wantDir: "DESC"},
		{name: "empty uses fallback", params: dto.QueryParams{}, wantBy: "tours.created_at", wantDir: "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.SanitizeSort("tours", "created_at", dto.SortDirDesc, "title", "price", "created_at")

			if params.SortBy != tt.wantBy || params.SortDir != tt.wantDir {
				t.Errorf("expected %s %s, got %s %s", tt.wantBy, tt.wantDir, params.SortBy, params.SortDir)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{page: 1, limit: 10, want: 0},
		{page: 3, limit: 10, want: 20},
		{page: 0, limit: 10, want: 0},
		{page: 2, limit: 0, want: 0},
	}

	for _, tt := range tests {
		q := dto.QueryParams{Page: tt.page, Limit: tt.limit}
		if got := q.Offset(); got != tt.want {
			t.Errorf("page %d limit %d: expected %d, got %d", tt.page, tt.limit, tt.want, got)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 0},
		{total: 1, limit: 10, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 25, limit: 7, want: 4},
		{total: 5, limit: 0, want: 0},
	}

	for _, tt := range tests {
		if got := dto.TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}

	p := dto.NewPagination(21, dto.QueryParams{Page: 3, Limit: 10})
	if p.TotalPages != 3 || p.Page != 3 || p.Limit != 10 || p.Total != 21 {
		t.Errorf("unexpected pagination %+v", p)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "eq with nested or of likes",
			group: dto.And(
				dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: true, Table: "tours"},
				dto.Or(
					dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "safari", Table: "tours"},
					dto.Filter{Field: "category", Operator: dto.FilterOperatorLike, Value: "safari", Table: "tours"},
				),
			),
			wantWhere: "(tours.is_active = :is_active AND (LOWER(tours.title) LIKE LOWER(:title) OR LOWER(tours.category) LIKE LOWER(:category)))",
			wantArgs:  map[string]any{"is_active": true, "title": "%safari%", "category": "%safari%"},
		},
		{
			name: "empty like group is skipped",
			group: dto.And(
				dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: true},
				dto.Or(dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: ""}),
			),
			wantWhere: "(is_active = :is_active)",
			wantArgs:  map[string]any{"is_active": true},
		},
		{
			name: "case insensitive eq",
			group: dto.And(
				dto.Filter{Field: "customer_email", Operator: dto.FilterOperatorEqFold, Value: "John@X.com", Table: "bookings"},
			),
			wantWhere: "(LOWER(bookings.customer_email) = LOWER(:customer_email))",
			wantArgs:  map[string]any{"customer_email": "John@X.com"},
		},
		{
			name: "in with slice",
			group: dto.And(
				dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
			),
			wantWhere: "(status IN (:status_0, :status_1))",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name: "null window",
			group: dto.Or(
				dto.Filter{Field: "start_date", Operator: dto.FilterIsNull},
				dto.Filter{Field: "start_date", Operator: dto.FilterOperatorLessEq, Value: "2025-01-01"},
			),
			wantWhere: "(start_date IS NULL OR start_date <= :start_date)",
			wantArgs:  map[string]any{"start_date": "2025-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			if strings.TrimSpace(where) != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, args)
			}
		})
	}
}
