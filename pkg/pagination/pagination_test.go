package pagination_test

import (
	"testing"

	"github.com/acuity-lab/acuity/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 25, MaxPageSize: 50}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		request      pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "zero values get defaults",
			request:      pagination.PageRequest{},
			wantPage:     1,
			wantPageSize: 25,
		},
		{
			name:         "negative page clamped",
			request:      pagination.PageRequest{Page: -3, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
		},
		{
			name:         "oversized page size clamped to max",
			request:      pagination.PageRequest{Page: 2, PageSize: 500},
			wantPage:     2,
			wantPageSize: 50,
		},
		{
			name:         "valid values untouched",
			request:      pagination.PageRequest{Page: 4, PageSize: 30},
			wantPage:     4,
			wantPageSize: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize(testConfig())
			if tt.request.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.request.Page, tt.wantPage)
			}
			if tt.request.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.request.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	r := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := r.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		data           []string
		total          int
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{"even division", []string{"a", "b"}, 50, 1, 25, 2},
		{"remainder rounds up", []string{"a"}, 51, 1, 25, 3},
		{"empty total still one page", nil, 0, 1, 25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult(tt.data, tt.total, tt.page, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data = nil, want empty slice")
			}
			if result.Total != tt.total {
				t.Errorf("Total = %d, want %d", result.Total, tt.total)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}
