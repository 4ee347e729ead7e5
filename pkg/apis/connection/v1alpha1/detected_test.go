package v1alpha1_test

import (
	"testing"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/stretchr/testify/assert"
)

func TestDetectedContainer_Label(t *testing.T) {
	t.Parallel()

	container := v1alpha1.DetectedContainer{
		Name:   "pg",
		Engine: v1alpha1.EnginePostgreSQL,
		Image:  "postgres:16",
	}

	assert.Equal(t, "pg (PostgreSQL - postgres:16)", container.Label())
}

func TestDetectedContainer_PublishedPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ports  []string
		want   uint16
		wantOK bool
	}{
		{name: "ipv4 mapping", ports: []string{"0.0.0.0:15432->5432/tcp"}, want: 15432, wantOK: true},
		{name: "ipv6 mapping", ports: []string{":::5433->5432/tcp"}, want: 5433, wantOK: true},
		{
			name:   "skips unrelated mappings",
			ports:  []string{"0.0.0.0:8080->80/tcp", "[::]:5434->5432/tcp"},
			want:   5434,
			wantOK: true,
		},
		{name: "exposed only", ports: []string{"5432/tcp"}},
		{name: "empty", ports: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			container := v1alpha1.DetectedContainer{Ports: tt.ports}

			got, ok := container.PublishedPort("5432")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
