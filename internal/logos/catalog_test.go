package logos

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/preston-bernstein/logo-scatter-service/internal/testutil"
)

func TestCatalogLookupNormalizesCategory(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, dir, "universidad_de_chile.png", 50, 50, red)
	testutil.WritePNG(t, dir, "Unión Española.png", 50, 50, red)

	c := NewCatalog(dir)
	if err := c.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	l, ok := c.Lookup("Universidad de Chile")
	if !ok || l.File != "universidad_de_chile.png" {
		t.Fatalf("expected canonical file match, got %+v ok=%v", l, ok)
	}
	if _, ok := c.Lookup("union espanola"); !ok {
		t.Fatalf("expected non-canonical file to match by key")
	}
	if _, ok := c.Lookup("Palestino"); ok {
		t.Fatalf("expected no logo for Palestino")
	}
	if _, ok := c.Lookup("   "); ok {
		t.Fatalf("expected blank category to miss")
	}

	if got := c.Keys(); !reflect.DeepEqual(got, []string{"union_espanola", "universidad_de_chile"}) {
		t.Fatalf("unexpected keys %v", got)
	}
	if c.Len() != 2 || len(c.Logos()) != 2 {
		t.Fatalf("expected two logos")
	}
}

func TestCatalogOpenCachesUntilReload(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, dir, "everton.png", 50, 50, red)
	c := NewCatalog(dir)
	if err := c.Load(); err != nil {
		t.Fatal(err)
	}
	l, _ := c.Lookup("Everton")
	img, err := c.Open(l)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if img.Bounds().Dx() != 50 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if _, ok := c.images[l.Key]; !ok {
		t.Fatalf("expected decoded image to be cached")
	}
	if err := c.Load(); err != nil {
		t.Fatal(err)
	}
	if len(c.images) != 0 {
		t.Fatalf("expected cache cleared on reload")
	}
}

func TestCatalogMissingDirIsEmpty(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "missing"))
	if err := c.Load(); err != nil {
		t.Fatalf("expected missing dir to load empty, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestCatalogOpenMissingFile(t *testing.T) {
	c := NewCatalog(t.TempDir())
	if _, err := c.Open(Logo{Key: "ghost", File: "ghost.png"}); err == nil {
		t.Fatalf("expected error opening missing file")
	}
}
