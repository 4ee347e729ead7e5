package v1alpha1_test

import (
	"testing"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/stretchr/testify/assert"
)

func TestProfiles_Classify(t *testing.T) {
	t.Parallel()

	profiles := v1alpha1.DefaultProfiles()

	tests := []struct {
		name   string
		image  string
		ports  []string
		want   v1alpha1.Engine
		wantOK bool
	}{
		{name: "postgres image", image: "postgres:16", want: v1alpha1.EnginePostgreSQL, wantOK: true},
		{name: "bitnami postgresql", image: "bitnami/postgresql:latest", want: v1alpha1.EnginePostgreSQL, wantOK: true},
		{name: "mysql image", image: "MySQL:8", want: v1alpha1.EngineMySQL, wantOK: true},
		{name: "mariadb image", image: "mariadb:11", want: v1alpha1.EngineMySQL, wantOK: true},
		{name: "mongo image", image: "mongo:7", want: v1alpha1.EngineMongoDB, wantOK: true},
		{
			name:   "port fallback",
			image:  "acme/custom-db:1",
			ports:  []string{"0.0.0.0:15432->5432/tcp"},
			want:   v1alpha1.EnginePostgreSQL,
			wantOK: true,
		},
		{
			name:   "first port entry wins",
			image:  "acme/custom-db:1",
			ports:  []string{"27017/tcp", "3306/tcp"},
			want:   v1alpha1.EngineMongoDB,
			wantOK: true,
		},
		{name: "image beats port", image: "mysql:8", ports: []string{"5432/tcp"}, want: v1alpha1.EngineMySQL, wantOK: true},
		{name: "neither", image: "nginx:latest", ports: []string{"0.0.0.0:80->80/tcp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := profiles.Classify(tt.image, tt.ports)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineProfile_Defaults(t *testing.T) {
	t.Parallel()

	profiles := v1alpha1.DefaultProfiles()

	tests := []struct {
		name   string
		engine v1alpha1.Engine
		env    map[string]string
		want   map[string]string
	}{
		{
			name:   "postgres fallbacks",
			engine: v1alpha1.EnginePostgreSQL,
			want:   map[string]string{"user": "postgres", "database": "postgres"},
		},
		{
			name:   "postgres prefers POSTGRES_ over POSTGRESQL_",
			engine: v1alpha1.EnginePostgreSQL,
			env: map[string]string{
				"POSTGRES_USER":       "app",
				"POSTGRESQL_USER":     "other",
				"POSTGRESQL_DATABASE": "appdb",
				"POSTGRES_PASSWORD":   "secret",
			},
			want: map[string]string{"user": "app", "database": "appdb", "password": "secret"},
		},
		{
			name:   "mysql user is always root",
			engine: v1alpha1.EngineMySQL,
			env:    map[string]string{"MYSQL_USER": "app", "MYSQL_DATABASE": "shop", "MYSQL_ROOT_PASSWORD": "pw"},
			want:   map[string]string{"user": "root", "database": "shop", "password": "pw"},
		},
		{
			name:   "mysql has no database fallback",
			engine: v1alpha1.EngineMySQL,
			want:   map[string]string{"user": "root"},
		},
		{
			name:   "mongo fallbacks",
			engine: v1alpha1.EngineMongoDB,
			want:   map[string]string{"user": "root", "database": "admin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, profiles[tt.engine].Defaults(tt.env))
		})
	}
}

func TestProfiles_Merge(t *testing.T) {
	t.Parallel()

	base := v1alpha1.DefaultProfiles()

	merged := base.Merge(v1alpha1.Profiles{
		v1alpha1.EnginePostgreSQL: {
			ImageKeywords: []string{"timescale"},
			DefaultUser:   "admin",
		},
	})

	assert.Equal(t, []string{"timescale"}, merged[v1alpha1.EnginePostgreSQL].ImageKeywords)
	assert.Equal(t, "admin", merged[v1alpha1.EnginePostgreSQL].DefaultUser)
	assert.Equal(t, "5432", merged[v1alpha1.EnginePostgreSQL].Port, "unset fields keep built-in values")
	assert.Equal(t, base[v1alpha1.EngineMySQL], merged[v1alpha1.EngineMySQL])
	assert.Equal(t, []string{"postgres", "postgresql"}, base[v1alpha1.EnginePostgreSQL].ImageKeywords,
		"merge must not modify the receiver")
}

func TestEngineProfile_Allows(t *testing.T) {
	t.Parallel()

	profile := v1alpha1.DefaultProfiles()[v1alpha1.EngineMongoDB]

	assert.True(t, profile.Allows("MONGO_INITDB_ROOT_PASSWORD"))
	assert.False(t, profile.Allows("AWS_SECRET_ACCESS_KEY"))
}
