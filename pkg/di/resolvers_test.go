package di_test

import (
	"testing"

	"github.com/devantler-tech/dbcli/pkg/di"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvers_ReportMissingDependencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resolve func(di.Injector) error
		want    string
	}{
		{name: "settings", resolve: func(i di.Injector) error { return errOnly(di.ResolveSettings(i)) }, want: "resolve settings dependency"},
		{name: "logger", resolve: func(i di.Injector) error { return errOnly(di.ResolveLogger(i)) }, want: "resolve logger dependency"},
		{name: "runner", resolve: func(i di.Injector) error { return errOnly(di.ResolveRunner(i)) }, want: "resolve runtime runner dependency"},
		{name: "store", resolve: func(i di.Injector) error { return errOnly(di.ResolveStore(i)) }, want: "resolve alias store dependency"},
		{name: "connector", resolve: func(i di.Injector) error { return errOnly(di.ResolveConnector(i)) }, want: "resolve connector dependency"},
		{name: "resolver", resolve: func(i di.Injector) error { return errOnly(di.ResolveResolver(i)) }, want: "resolve interactive resolver dependency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.resolve(do.New())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func errOnly[T any](_ T, err error) error {
	return err
}
