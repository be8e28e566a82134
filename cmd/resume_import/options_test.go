package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears the package flag variables and restores them after the test.
func resetFlags(t *testing.T) {
	t.Helper()

	saved := []string{configPath, backendFlag, credentialsFlag, projectFlag, databaseURLFlag, collectionFlag}
	savedVerbose := verboseFlag
	t.Cleanup(func() {
		configPath, backendFlag, credentialsFlag = saved[0], saved[1], saved[2]
		projectFlag, databaseURLFlag, collectionFlag = saved[3], saved[4], saved[5]
		verboseFlag = savedVerbose
	})

	configPath, backendFlag, credentialsFlag = "", "", ""
	projectFlag, databaseURLFlag, collectionFlag = "", "", ""
	verboseFlag = false
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvBackend, config.EnvCredentials, config.EnvProjectID,
		config.EnvDatabaseURL, config.EnvCollection, config.EnvEmulatorHost,
	} {
		t.Setenv(key, "")
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		flags    func()
		env      map[string]string
		override string
		wantErr  string
		check    func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "flag beats file",
			file: `{"backend": "postgres", "database_url": "postgres://file/db", "collection": "from_file"}`,
			flags: func() {
				backendFlag = "memory"
				collectionFlag = "from_flag"
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "memory", cfg.Backend)
				assert.Equal(t, "from_flag", cfg.Collection)
				assert.Equal(t, "postgres://file/db", cfg.DatabaseURL)
			},
		},
		{
			name: "file beats env",
			file: `{"backend": "memory", "collection": "from_file"}`,
			env: map[string]string{
				config.EnvBackend:    "postgres",
				config.EnvCollection: "from_env",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "memory", cfg.Backend)
				assert.Equal(t, "from_file", cfg.Collection)
			},
		},
		{
			name: "env fills blank fields",
			file: `{"backend": "memory"}`,
			env: map[string]string{
				config.EnvCollection:  "from_env",
				config.EnvProjectID:   "env-project",
				config.EnvDatabaseURL: "postgres://env/db",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "from_env", cfg.Collection)
				assert.Equal(t, "env-project", cfg.ProjectID)
				assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
			},
		},
		{
			name: "defaults fill the rest",
			flags: func() {
				backendFlag = "memory"
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, types.DefaultCollection, cfg.Collection)
				assert.Equal(t, config.DefaultCredentialsFile, cfg.CredentialsFile)
				assert.Equal(t, types.DefaultTargets(), cfg.Targets)
			},
		},
		{
			name: "backend override beats flag file and env",
			file: `{"backend": "postgres", "database_url": "postgres://file/db"}`,
			flags: func() {
				backendFlag = "postgres"
			},
			env:      map[string]string{config.EnvBackend: "postgres"},
			override: string(store.BackendMemory),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, string(store.BackendMemory), cfg.Backend)
			},
		},
		{
			name: "verbose flag",
			flags: func() {
				backendFlag = "memory"
				verboseFlag = true
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.Verbose)
			},
		},
		{
			name:    "invalid backend in file is rejected",
			file:    `{"backend": "mongo"}`,
			wantErr: "config error",
		},
		{
			name:    "invalid target in file is rejected",
			file:    `{"backend": "memory", "targets": [{"locale_code": "en"}]}`,
			wantErr: "config error",
		},
		{
			name:    "malformed file is rejected",
			file:    `{ not json`,
			wantErr: "failed to parse config JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			clearConfigEnv(t)

			if tt.file != "" {
				configPath = filepath.Join(t.TempDir(), "config.json")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.file), 0644))
			}
			if tt.flags != nil {
				tt.flags()
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := resolveConfig(tt.override)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.check(t, cfg)
		})
	}
}

func TestRunImport_DryRunUsesMemoryBackend(t *testing.T) {
	resetFlags(t)
	clearConfigEnv(t)

	dir := t.TempDir()
	enPath := filepath.Join(dir, "profile_en.json")
	require.NoError(t, os.WriteFile(enPath, []byte(`{"name": "Ada"}`), 0644))

	configPath = filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"backend": "postgres",
		"database_url": "postgres://unreachable.invalid/db",
		"targets": [{"locale_code": "en", "file_path": "`+filepath.ToSlash(enPath)+`", "required": true}]
	}`), 0644))

	savedMode, savedDryRun := importMode, importDryRun
	t.Cleanup(func() { importMode, importDryRun = savedMode, savedDryRun })
	importMode = "replace"
	importDryRun = true

	var out, errOut bytes.Buffer
	importCmd.SetOut(&out)
	importCmd.SetErr(&errOut)
	t.Cleanup(func() {
		importCmd.SetOut(nil)
		importCmd.SetErr(nil)
	})

	require.NoError(t, runImport(importCmd, nil))
	assert.Contains(t, out.String(), "Imported en (replaced)")
	assert.Contains(t, out.String(), "Dry run: 1 document(s) held in memory")
}
