package rollover

import (
	"strings"

	"github.com/jademcosta/logroller/pkg/domain"
)

// NormalizeCompressedName guarantees the compression suffix appears exactly
// once at the end of the name, no matter whether the pattern already
// carried it. Applying it twice yields the same result as applying it once.
func NormalizeCompressedName(name string, compressionType string) string {
	switch compressionType {
	case domain.CompressionGzip:
		return strings.TrimSuffix(name, ".gz") + ".gz"
	case domain.CompressionZip:
		return strings.TrimSuffix(name, ".zip") + ".zip"
	default:
		return name
	}
}
