package logos

import "path/filepath"

const (
	manifestName = "manifest.json"
	logoExt      = ".png"
)

// ManifestPath builds the path of the manifest written next to normalized logos.
func ManifestPath(outputDir string) string {
	return filepath.Join(outputDir, manifestName)
}
