package dto_test

import (
	"strings"
	"testing"

	"tourbook/internal/domains/setting/model/dto"
	"tourbook/shared/validator"
)

func TestUpdateSettingsRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.UpdateSettingsRequest
		wantErr bool
	}{
		{name: "valid", req: dto.UpdateSettingsRequest{"site_name": "Arabian Adventure"}},
		{name: "empty value allowed", req: dto.UpdateSettingsRequest{"facebook_url": ""}},
		{name: "empty body", req: dto.UpdateSettingsRequest{}, wantErr: true},
		{name: "blank key", req: dto.UpdateSettingsRequest{"": "x"}, wantErr: true},
		{name: "long key", req: dto.UpdateSettingsRequest{strings.Repeat("k", 101): "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(map[string]string(tt.req), dto.ValidationTag)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVar() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
