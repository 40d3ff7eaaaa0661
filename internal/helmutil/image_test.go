package helmutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitImageRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		image    string
		wantRepo string
		wantTag  string
	}{
		{"ip-demo:dev", "ip-demo", "dev"},
		{"ip-demo", "ip-demo", "latest"},
		{"ghcr.io/workingdad365/ip-demo:v0.1.0", "ghcr.io/workingdad365/ip-demo", "v0.1.0"},
		{"localhost:5000/ip-demo", "localhost:5000/ip-demo", "latest"},
		{"localhost:5000/ip-demo:sha-abc123", "localhost:5000/ip-demo", "sha-abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			t.Parallel()
			repo, tag := SplitImageRef(tt.image)
			assert.Equal(t, tt.wantRepo, repo)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}
