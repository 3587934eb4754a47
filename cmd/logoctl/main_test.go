package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
	"github.com/preston-bernstein/logo-scatter-service/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalizeCommand(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	testutil.WritePNG(t, src, "Colo Colo.PNG", 120, 90, color.NRGBA{G: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("x"), 0o644))

	out, err := run(t, "normalize", "--source", src, "--output", dst, "--size", "32", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "Normalized 1 logos")

	f, err := os.Open(filepath.Join(dst, "colo_colo.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())

	_, err = logos.ReadManifest(dst)
	require.NoError(t, err)
}

func TestNormalizeCommandFailsOnMissingSource(t *testing.T) {
	_, err := run(t, "normalize", "--source", filepath.Join(t.TempDir(), "missing"), "--output", t.TempDir(), "--log-level", "error")
	require.Error(t, err)
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liga.xlsx")
	data := testutil.WorkbookBytes(t, map[string][][]any{"Tabla": testutil.SampleSheetRows()}, "Tabla")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	logoDir := t.TempDir()
	testutil.WritePNG(t, logoDir, "universidad_de_chile.png", 50, 50, color.NRGBA{B: 255, A: 255})
	dest := filepath.Join(t.TempDir(), "chart.png")

	out, err := run(t, "render", writeWorkbook(t), "--logos", logoDir, "--x", "Goles", "--y", "Puntos", "-o", dest, "--log-level", "error")
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "1 logos, 1 fallback markers, 1 rows skipped"), out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestRenderCommandDefaultFileName(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "render", writeWorkbook(t), "--logos", t.TempDir(), "--x", "Goles", "--y", "Puntos", "--log-level", "error")
	require.NoError(t, err)
	_, err = os.Stat("Goles_vs_Puntos.png")
	require.NoError(t, err)
}

func TestRenderCommandErrors(t *testing.T) {
	wb := writeWorkbook(t)

	_, err := run(t, "render", wb, "--x", "Goles")
	require.ErrorContains(t, err, "--x and --y")

	_, err = run(t, "render", wb, "--logos", t.TempDir(), "--x", "Goles", "--y", "Nope", "--log-level", "error")
	require.ErrorContains(t, err, "unknown column")

	_, err = run(t, "render", wb, "--logos", t.TempDir(), "--sheet", "Otra", "--x", "Goles", "--y", "Puntos", "--log-level", "error")
	require.ErrorContains(t, err, "unknown sheet")

	_, err = run(t, "render")
	require.Error(t, err)
}
