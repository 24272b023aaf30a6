package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredFilename builds a unique on-disk name for an uploaded manuscript,
// keeping the original extension. Round is 0 for the initial submission and
// the revision round otherwise.
func StoredFilename(userID, round int, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	stamp := time.Now().Format("20060102150405")
	token := uuid.New().String()[:8]
	if round > 0 {
		return fmt.Sprintf("%s_%d_r%d_%s%s", stamp, userID, round, token, ext)
	}
	return fmt.Sprintf("%s_%d_%s%s", stamp, userID, token, ext)
}
