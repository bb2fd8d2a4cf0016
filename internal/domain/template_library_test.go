package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveTemplateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SaveTemplateRequest
		wantErr string
	}{
		{"valid", SaveTemplateRequest{SessionID: "s", Name: "  Spring sale  "}, ""},
		{"missing session", SaveTemplateRequest{Name: "x"}, "session_id is required"},
		{"blank name", SaveTemplateRequest{SessionID: "s", Name: "   "}, "name is required"},
		{"long name", SaveTemplateRequest{SessionID: "s", Name: strings.Repeat("é", 61)}, "name length must be between 1 and 60"},
		{"long description", SaveTemplateRequest{SessionID: "s", Name: "x", Description: strings.Repeat("a", 121)}, "description length must be at most 120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, "validation error: "+tt.wantErr)
		})
	}

	req := SaveTemplateRequest{SessionID: "s", Name: "  Spring sale  "}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "Spring sale", req.Name, "name is trimmed")
}

func TestTemplateKeyRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TemplateKeyRequest{Key: "spring-sale-1"}).Validate())
	assert.Error(t, (&TemplateKeyRequest{}).Validate())
	assert.Error(t, (&TemplateKeyRequest{Key: "has space"}).Validate())
	assert.Error(t, (&TemplateKeyRequest{Key: strings.Repeat("k", 151)}).Validate())
}
