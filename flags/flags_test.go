package flags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// TestUniqueFlags asserts that no two flags share a name or env var.
func TestUniqueFlags(t *testing.T) {
	seenNames := map[string]struct{}{}
	seenEnvVars := map[string]struct{}{}
	for _, flag := range Flags {
		name := flag.Names()[0]
		_, ok := seenNames[name]
		require.False(t, ok, "duplicate flag name %s", name)
		seenNames[name] = struct{}{}

		envFlag, ok := flag.(interface{ GetEnvVars() []string })
		require.True(t, ok, "flag %s has no env vars", name)
		for _, envVar := range envFlag.GetEnvVars() {
			_, ok := seenEnvVars[envVar]
			require.False(t, ok, "duplicate env var %s", envVar)
			seenEnvVars[envVar] = struct{}{}
		}
	}
}

func TestEnvVarFormat(t *testing.T) {
	for _, flag := range Flags {
		flag := flag
		flagName := flag.Names()[0]

		t.Run(flagName, func(t *testing.T) {
			envFlag, ok := flag.(interface{ GetEnvVars() []string })
			require.True(t, ok)
			envVars := envFlag.GetEnvVars()
			require.Len(t, envVars, 1)

			expected := EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
			require.Equal(t, expected, envVars[0])
		})
	}
}

func TestCheckRequired(t *testing.T) {
	app := cli.NewApp()
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "registry"},
		&cli.StringFlag{Name: "suite"},
	}

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name: "all required flags set",
			args: []string{"--registry", "registry.yaml", "--suite", "smoke"},
		},
		{
			name:    "missing registry",
			args:    []string{"--suite", "smoke"},
			wantErr: "flag registry is required",
		},
		{
			name:    "missing suite",
			args:    []string{"--registry", "registry.yaml"},
			wantErr: "flag suite is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checkErr error
			app.Action = func(ctx *cli.Context) error {
				checkErr = CheckRequired(ctx)
				return nil
			}
			require.NoError(t, app.Run(append([]string{"app"}, tt.args...)))
			if tt.wantErr == "" {
				require.NoError(t, checkErr)
			} else {
				require.ErrorContains(t, checkErr, tt.wantErr)
			}
		})
	}
}
