package fixture

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ticket-tokengen/internal/auth"
	"github.com/spec-kit/ticket-tokengen/internal/config"
	"github.com/spec-kit/ticket-tokengen/internal/domain"
)

type testEnv struct {
	generator  *Generator
	out        *bytes.Buffer
	tokensPath string
	usersPath  string
}

func newTestEnv(t *testing.T, profiles []domain.UserProfile, emitSeed bool) *testEnv {
	t.Helper()

	dir := t.TempDir()
	authCfg := config.AuthConfig{
		JWTSecret:  "test-secret",
		Issuer:     "ga-ticketing-system",
		Audience:   "ga-ticketing-client",
		TTLHours:   24,
		BcryptCost: bcrypt.MinCost,
	}
	output := config.OutputConfig{
		TokensPath:   filepath.Join(dir, "test_tokens.json"),
		EmitUserSeed: emitSeed,
		UsersPath:    filepath.Join(dir, "test_users.json"),
	}

	out := &bytes.Buffer{}
	generator := NewGenerator(Dependencies{
		Issuer:     auth.NewTokenIssuer(authCfg),
		Profiles:   profiles,
		Output:     output,
		BcryptCost: authCfg.BcryptCost,
		Out:        out,
	})
	return &testEnv{
		generator:  generator,
		out:        out,
		tokensPath: output.TokensPath,
		usersPath:  output.UsersPath,
	}
}

func readBundle(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved map[string]string
	require.NoError(t, json.Unmarshal(data, &saved))
	return saved
}

func TestRun_BundleCoversEveryRole(t *testing.T) {
	env := newTestEnv(t, domain.DefaultProfiles(), false)

	bundle, err := env.generator.Run()
	require.NoError(t, err)

	require.Len(t, bundle, 3)
	for _, role := range []string{"requester", "approver", "admin"} {
		assert.Contains(t, bundle, role)
		assert.NotEmpty(t, bundle[role])
	}

	saved := readBundle(t, env.tokensPath)
	assert.Equal(t, map[string]string(bundle), saved)

	_, err = os.Stat(env.usersPath)
	assert.True(t, os.IsNotExist(err), "user seed must not be written unless enabled")
}

func TestRun_OverwritesPriorBundle(t *testing.T) {
	env := newTestEnv(t, domain.DefaultProfiles(), false)
	stale := []byte(`{"legacy-role": "stale-token"}`)
	require.NoError(t, os.WriteFile(env.tokensPath, stale, 0o644))

	_, err := env.generator.Run()
	require.NoError(t, err)

	saved := readBundle(t, env.tokensPath)
	assert.NotContains(t, saved, "legacy-role")
	assert.Len(t, saved, 3)
}

func TestRun_ConsoleReportOrderAndContent(t *testing.T) {
	env := newTestEnv(t, domain.DefaultProfiles(), false)

	_, err := env.generator.Run()
	require.NoError(t, err)

	printed := env.out.String()
	requester := strings.Index(printed, "REQUESTER USER:")
	approver := strings.Index(printed, "APPROVER USER:")
	admin := strings.Index(printed, "ADMIN USER:")
	require.GreaterOrEqual(t, requester, 0)
	assert.Less(t, requester, approver)
	assert.Less(t, approver, admin)

	assert.Contains(t, printed, "  Name: John Requester\n")
	assert.Contains(t, printed, "  Email: admin@company.com\n")
	assert.Contains(t, printed, "  Role: approver\n")
	assert.Contains(t, printed, "Tokens saved to: "+env.tokensPath)

	assert.Contains(t, printed, `export REQUESTER_TOKEN="`)
	assert.Contains(t, printed, `export APPROVER_TOKEN="`)
	assert.Contains(t, printed, `export ADMIN_TOKEN="`)
}

func TestRun_ExportLinesTrackProfileTable(t *testing.T) {
	profiles := append(domain.DefaultProfiles(), domain.UserProfile{
		ID:         "aud-001",
		EmployeeID: "EMP004",
		Name:       "Alice Auditor",
		Email:      "alice.auditor@company.com",
		Role:       domain.Role("auditor"),
		Department: "Compliance",
	})
	env := newTestEnv(t, profiles, false)

	bundle, err := env.generator.Run()
	require.NoError(t, err)
	require.Len(t, bundle, 4)

	printed := env.out.String()
	assert.Contains(t, printed, `export AUDITOR_TOKEN="`)
	assert.Equal(t, 4, strings.Count(printed, "export "))
}

func TestRun_DuplicateRoleRejected(t *testing.T) {
	profiles := domain.DefaultProfiles()
	profiles = append(profiles, profiles[0])
	env := newTestEnv(t, profiles, false)

	_, err := env.generator.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate role")
}

func TestRun_SigningFailureWritesNoFile(t *testing.T) {
	env := newTestEnv(t, domain.DefaultProfiles(), false)
	env.generator.issuer = auth.NewTokenIssuer(config.AuthConfig{TTLHours: 24})

	_, err := env.generator.Run()
	require.Error(t, err)

	_, statErr := os.Stat(env.tokensPath)
	assert.True(t, os.IsNotExist(statErr), "no bundle file on signing failure")
}

func TestRun_UserSeedArtifact(t *testing.T) {
	env := newTestEnv(t, domain.DefaultProfiles(), true)

	_, err := env.generator.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(env.usersPath)
	require.NoError(t, err)

	var seed []SeedUser
	require.NoError(t, json.Unmarshal(data, &seed))
	require.Len(t, seed, 3)

	for i, profile := range domain.DefaultProfiles() {
		assert.Equal(t, profile.ID, seed[i].ID)
		assert.Equal(t, profile.EmployeeID, seed[i].EmployeeID)
		assert.Equal(t, string(profile.Role), seed[i].Role)
		assert.True(t, seed[i].IsActive)
		assert.NoError(t, auth.ComparePassword(seed[i].PasswordHash, profile.TestPassword))
	}

	assert.Contains(t, env.out.String(), "User seed saved to: "+env.usersPath)
}
