package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSelectorConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]any
		wantErr bool
	}{
		{
			name:    "Nil Config",
			cfg:     nil,
			wantErr: false,
		},
		{
			name:    "Empty Config",
			cfg:     map[string]any{},
			wantErr: false,
		},
		{
			name: "Full Valid Config",
			cfg: map[string]any{
				"list_selector":        ".job-card",
				"title_selector":       "h3",
				"location_selector":    ".loc",
				"company_selector":     ".org",
				"url_selector":         "a.apply",
				"description_selector": ".teaser",
				"external_id_attr":     "data-id",
			},
			wantErr: false,
		},
		{
			name:    "Unknown Key",
			cfg:     map[string]any{"list_selektor": "article"},
			wantErr: true,
		},
		{
			name:    "Wrong Type",
			cfg:     map[string]any{"title_selector": 42},
			wantErr: true,
		},
		{
			name:    "Empty Selector String",
			cfg:     map[string]any{"title_selector": ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelectorConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSelectorConfigReportsFields(t *testing.T) {
	err := ValidateSelectorConfig(map[string]any{"title_selector": 42})

	require.Error(t, err)
	var ve *ConfigValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "title_selector", ve.Errors[0].Field)
}
