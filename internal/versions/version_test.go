package versions

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfoWithValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		version       string
		commit        string
		buildDate     string
		wantVersion   string
		wantCommit    string
		wantBuildDate string
	}{
		{
			name:          "release values pass through",
			version:       "v1.2.3",
			commit:        "abcdef1234567890",
			buildDate:     "2026-08-31T12:00:00Z",
			wantVersion:   "v1.2.3",
			wantCommit:    "abcdef1234567890",
			wantBuildDate: "2026-08-31 12:00:00 UTC",
		},
		{
			name:          "dev version is manufactured from the commit",
			version:       "dev",
			commit:        "abcdef1234567890",
			buildDate:     "2026-08-31T12:00:00Z",
			wantVersion:   "build-abcdef12",
			wantCommit:    "abcdef1234567890",
			wantBuildDate: "2026-08-31 12:00:00 UTC",
		},
		{
			name:          "unknown build date stays unknown",
			version:       "v1.2.3",
			commit:        "abcdef1234567890",
			buildDate:     unknownStr,
			wantVersion:   "v1.2.3",
			wantCommit:    "abcdef1234567890",
			wantBuildDate: unknownStr,
		},
		{
			name:          "non-timestamp build date is left as-is",
			version:       "v1.2.3",
			commit:        "abcdef1234567890",
			buildDate:     "yesterday",
			wantVersion:   "v1.2.3",
			wantCommit:    "abcdef1234567890",
			wantBuildDate: "yesterday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := getVersionInfoWithValues(tt.version, tt.commit, tt.buildDate)
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantCommit, info.Commit)
			assert.Equal(t, tt.wantBuildDate, info.BuildDate)
			assert.Equal(t, runtime.Version(), info.GoVersion)
			assert.Equal(t, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), info.Platform)
		})
	}
}
