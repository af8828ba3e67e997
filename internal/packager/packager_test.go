package packager

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
)

func testConfig(sourceDir string) *config.Config {
	return &config.Config{
		AppName:         "bcb",
		EnvironmentName: "bcb-prod",
		Region:          "us-east-1",
		SourceDir:       sourceDir,
		OutputDir:       filepath.Join(sourceDir, "dist"),
		Platform: config.PlatformConfig{
			Entrypoint: "app.main:app",
		},
	}
}

func seedSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pipfile"), []byte("[packages]\nfastapi = \"*\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("fastapi==0.111.0\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "main.py"), []byte("app = object()\n"), 0o644))
	return dir
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPackage_MissingManifestIsFatal(t *testing.T) {
	t.Parallel()

	p := New(testConfig(t.TempDir()))
	_, err := p.Package(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrManifestMissing)
}

func TestPackage_ProducesVersionedArtifact(t *testing.T) {
	t.Parallel()

	dir := seedSource(t)
	p := New(testConfig(dir))
	p.now = fixedClock(time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC))

	artifact, err := p.Package(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "bcb-20260825-120000", artifact.VersionLabel)
	assert.Equal(t, filepath.Join(dir, "dist", "bcb-20260825-120000.zip"), artifact.Path)
	assert.Positive(t, artifact.Size)

	// generated files
	assert.FileExists(t, filepath.Join(dir, "Procfile"))
	assert.FileExists(t, filepath.Join(dir, ".ebextensions", "01-runtime.config"))
	assert.FileExists(t, filepath.Join(dir, ".ebextensions", "02-logging.config"))
	assert.FileExists(t, filepath.Join(dir, "logs", "app.log"))

	procfile, err := os.ReadFile(filepath.Join(dir, "Procfile"))
	require.NoError(t, err)
	assert.Equal(t, "web: uvicorn app.main:app --host 0.0.0.0 --port $PORT\n", string(procfile))

	runtime, err := os.ReadFile(filepath.Join(dir, ".ebextensions", "01-runtime.config"))
	require.NoError(t, err)
	assert.Contains(t, string(runtime), "WSGIPath: app.main:app")
}

func TestPackage_DoesNotOverwriteHandAuthoredFiles(t *testing.T) {
	t.Parallel()

	dir := seedSource(t)
	custom := "web: gunicorn app.main:app\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Procfile"), []byte(custom), 0o644))

	p := New(testConfig(dir))
	_, err := p.Package(context.Background())
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "Procfile"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(got), "an existing Procfile must win over the generated one")
}

func TestPackage_Reproducible(t *testing.T) {
	t.Parallel()

	dir := seedSource(t)
	p := New(testConfig(dir))
	p.now = fixedClock(time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC))

	first, err := p.Package(context.Background())
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(first.Path))

	second, err := p.Package(context.Background())
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.Path)
	require.NoError(t, err)

	assert.Equal(t, firstBytes, secondBytes, "unchanged source must produce a byte-identical archive")
}

func TestPackage_Exclusions(t *testing.T) {
	t.Parallel()

	dir := seedSource(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tests"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tests", "test_main.py"), []byte("def test(): pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SECRET_KEY=x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "main.pyc"), []byte{0}, 0o644))

	p := New(testConfig(dir))
	artifact, err := p.Package(context.Background())
	require.NoError(t, err)

	names := archiveNames(t, artifact.Path)
	assert.Contains(t, names, "app/main.py")
	assert.Contains(t, names, "Pipfile")
	assert.NotContains(t, names, ".git/HEAD")
	assert.NotContains(t, names, "tests/test_main.py")
	assert.NotContains(t, names, ".env")
	assert.NotContains(t, names, "app/main.pyc")

	for _, name := range names {
		assert.NotContains(t, name, "dist/", "the artifact output dir must not ship inside itself")
	}
}

func TestEnsureRequirements_FlattensManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pipfile"), []byte("[packages]\n"), 0o644))

	cfg := testConfig(dir)
	p := New(cfg)
	p.runCommand = func(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
		if name == "pipenv" {
			return []byte("fastapi==0.111.0\nsqlalchemy==2.0.30\n"), nil
		}
		return nil, errors.New("unexpected command")
	}

	require.NoError(t, p.ensureRequirements(context.Background()))

	got, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "fastapi==0.111.0")
}

func TestEnsureRequirements_FallsBackToFreeze(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := New(testConfig(dir))
	p.runCommand = func(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
		if name == "pipenv" {
			return nil, errors.New("pipenv not installed")
		}
		return []byte("fastapi==0.111.0\n"), nil
	}

	require.NoError(t, p.ensureRequirements(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "requirements.txt"))
}

func TestEnsureRequirements_BothToolsFailing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := New(testConfig(dir))
	p.runCommand = func(_ context.Context, _ string, _ string, _ ...string) ([]byte, error) {
		return nil, errors.New("no python here")
	}

	err := p.ensureRequirements(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to flatten dependency manifest")
}

func TestEnsureRequirements_ExistingListWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pinned := "fastapi==0.100.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(pinned), 0o644))

	p := New(testConfig(dir))
	p.runCommand = func(_ context.Context, _ string, _ string, _ ...string) ([]byte, error) {
		t.Fatal("no command should run when requirements.txt exists")
		return nil, nil
	}

	require.NoError(t, p.ensureRequirements(context.Background()))

	got, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
	require.NoError(t, err)
	assert.Equal(t, pinned, string(got))
}

func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}
