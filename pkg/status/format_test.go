package status

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatFileOperation(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		path     string
		fileType string
		status   FileStatus
		detail   string
		want     string
	}{
		{
			name:     "modified_report",
			path:     "apps.csv",
			fileType: "csv",
			status:   StatusModified,
			detail:   "12 cells filled",
			want:     "    ⟳ apps.csv                            csv        modified   12 cells filled",
		},
		{
			name:     "new_manifest",
			path:     "SelfServeManifest",
			fileType: "plist",
			status:   StatusNew,
			want:     "    ✓ SelfServeManifest                   plist      new",
		},
		{
			name:     "unchanged",
			path:     "apps.csv",
			fileType: "csv",
			status:   StatusUnchanged,
			want:     "    - apps.csv                            csv        unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFileOperation(tt.path, tt.fileType, tt.status, tt.detail)
			assert.Equal(t, tt.want, got, "formatted line should match")
		})
	}
}

func TestFormatDiff(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	before := "Title,Version\nApp,1.0\n,1.1\n"
	after := "Title,Version\nApp,1.0\nApp,1.1\n"

	got := FormatDiff(before, after)
	assert.Equal(t, "- ,1.1\n+ App,1.1\n", got, "diff should only show changed lines")

	assert.Empty(t, FormatDiff(after, after), "identical input should produce no diff")
}
