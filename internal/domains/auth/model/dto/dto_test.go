package dto_test

import (
	"testing"

	"tourbook/infras/jwt"
	"tourbook/internal/domains/auth/model/dto"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	var res dto.LoginResponse
	res.FromTokenPair(pair)

	if res.AccessToken != "access" || res.RefreshToken != "refresh" {
		t.Errorf("tokens not copied: %+v", res)
	}

	if res.TokenType != "Bearer" || res.ExpiresIn != 3600 {
		t.Errorf("token metadata not copied: %+v", res)
	}
}

func TestRefreshTokenRequest_Token(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "padded", input: "  abc.def.ghi  ", want: "abc.def.ghi"},
		{name: "bearer prefix", input: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.RefreshTokenRequest{RefreshToken: tt.input}

			if got := req.Token(); got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}
