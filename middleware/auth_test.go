package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomClaims_HasScope(t *testing.T) {
	tests := []struct {
		name          string
		scope         string
		expectedScope string
		want          bool
	}{
		{
			name:          "has exact scope",
			scope:         "read:quotations",
			expectedScope: "read:quotations",
			want:          true,
		},
		{
			name:          "has scope in multiple scopes",
			scope:         "read:quotations write:quotations delete:quotations",
			expectedScope: "write:quotations",
			want:          true,
		},
		{
			name:          "does not have scope",
			scope:         "read:quotations",
			expectedScope: "write:quotations",
			want:          false,
		},
		{
			name:          "empty scope",
			scope:         "",
			expectedScope: "read:quotations",
			want:          false,
		},
		{
			name:          "partial match should not work",
			scope:         "read:quotations",
			expectedScope: "read",
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := CustomClaims{Scope: tt.scope}
			got := claims.HasScope(tt.expectedScope)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := CustomClaims{Scope: "read:quotations"}
	assert.NoError(t, claims.Validate(context.Background()))
}
