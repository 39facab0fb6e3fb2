package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tourbook/shared"
	cacheMocks "tourbook/shared/cache/mocks"
	"tourbook/shared/constant"
	"tourbook/shared/dto"

	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric one", input: "1", expected: boolPtr(true)},
		{name: "invalid returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			switch {
			case tt.expected == nil && result != nil:
				t.Errorf("expected nil, got %v", *result)
			case tt.expected != nil && result == nil:
				t.Errorf("expected %v, got nil", *tt.expected)
			case tt.expected != nil && *tt.expected != *result:
				t.Errorf("expected %v, got %v", *tt.expected, *result)
			}
		})
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 750, want: 750},
		{in: 68.6 * 3, want: 205.8},
		{in: 0.333333, want: 0.33},
	}

	for _, tt := range tests {
		if got := shared.RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidID(t *testing.T) {
	if !shared.IsValidID("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("expected uuid to be valid")
	}

	for _, id := range []string{"", "123", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
		if shared.IsValidID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestUserFromContext(t *testing.T) {
	if got := shared.UserFromContext(context.Background()); got != constant.ContextGuest {
		t.Errorf("expected guest, got %s", got)
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	if got := shared.UserFromContext(ctx); got != "user-1" {
		t.Errorf("expected user-1, got %s", got)
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Username string `db:"username"`
		Email    string `db:"email"`
		Role     string `db:"role"`
		Ignored  string
	}

	result := shared.TransformFields(update{Username: "sara", Role: "manager", Ignored: "x"}, "admin-1")

	if result["username"] != "sara" || result["role"] != "manager" {
		t.Errorf("unexpected fields %v", result)
	}

	if _, ok := result["email"]; ok {
		t.Error("zero field must be skipped")
	}

	if result[constant.FieldModifiedBy] != "admin-1" {
		t.Errorf("expected modified_by admin-1, got %v", result[constant.FieldModifiedBy])
	}

	if _, ok := result[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be stamped")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("123", "id", "tours")

	where, args := group.GetWhereClause()
	if where != "(tours.id = :id)" {
		t.Errorf("unexpected where %q", where)
	}

	if args["id"] != "123" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("tour:get", "abc"); got != "tour:get:abc" {
		t.Errorf("unexpected key %s", got)
	}

	if got := shared.BuildCacheKey("setting:all"); got != "setting:all" {
		t.Errorf("unexpected key %s", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	filter := dto.And(dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: true})

	first := shared.BuildCacheKeyWithQuery("tour:gets", dto.QueryParams{Page: 1, Limit: 10}, filter)
	same := shared.BuildCacheKeyWithQuery("tour:gets", dto.QueryParams{Page: 1, Limit: 10}, filter)
	other := shared.BuildCacheKeyWithQuery("tour:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	if first != same {
		t.Error("expected identical queries to share a key")
	}

	if first == other {
		t.Error("expected different pages to produce different keys")
	}

	if !strings.HasPrefix(first, "tour:gets:") {
		t.Errorf("expected prefix, got %s", first)
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "tour:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "tour:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "tour:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "tour:count")
}

func boolPtr(b bool) *bool {
	return &b
}
