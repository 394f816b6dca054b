package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"Demonstra/config"
	"Demonstra/internal/domain/company"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsAgainstSQLite(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "cli.db"))

	out, err := runCommand(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrações aplicadas")

	out, err = runCommand(t, "create-user",
		"--name", "Admin", "--email", "admin@demonstra.dev", "--password", "Senha@123", "--all-companies")
	require.NoError(t, err, out)
	assert.Contains(t, out, "admin@demonstra.dev")

	_, err = runCommand(t, "create-user",
		"--name", "Outro", "--email", "admin@demonstra.dev", "--password", "Senha@123", "--all-companies")
	require.Error(t, err)

	cfgOut, err := runCommand(t, "tree", "--company", "invalido")
	require.Error(t, err, cfgOut)

	svcCfg := loadTestConfig(t)
	svc, closeFn, err := openServices(svcCfg)
	require.NoError(t, err)
	ctx := context.Background()
	a, err := svc.companies.Create(ctx, company.CreateCompanyInput{Name: "Alfa"})
	require.NoError(t, err)
	b, err := svc.companies.Create(ctx, company.CreateCompanyInput{Name: "Beta"})
	require.NoError(t, err)
	closeFn()

	out, err = runCommand(t, "tree", "--company", a.Id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma conta configurada")

	out, err = runCommand(t, "copy-structure", "--from", a.Id.String(), "--to", b.Id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Copiadas 0 conta(s) e 0 componente(s)")

	out, err = runCommand(t, "report", "--company", a.Id.String(), "--month", "3", "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "DRE Alfa - Mar/24")

	xlsx := filepath.Join(t.TempDir(), "dre.xlsx")
	out, err = runCommand(t, "export", "--company", a.Id.String(), "--month", "3", "--year", "2024", "-o", xlsx)
	require.NoError(t, err)
	assert.FileExists(t, xlsx)
	assert.Contains(t, out, xlsx)
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
