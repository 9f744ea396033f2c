package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	maxNameRunes    = 100
	ownerHashLength = 16
	anonymousOwner  = "anonymous"
)

var errBadFileName = errors.New("invalid file name")

// KeyFor builds "resumes/<owner hash>/<uuid>_<name>". Anonymous uploads share one namespace.
func KeyFor(owner, fileName string) (string, error) {
	name, err := cleanFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join("resumes", ownerSegment(owner), uuid.NewString()+"_"+name), nil
}

// ownerSegment keeps user ids out of object keys.
func ownerSegment(owner string) string {
	if owner == "" {
		return anonymousOwner
	}
	sum := sha256.Sum256([]byte(owner))
	return hex.EncodeToString(sum[:])[:ownerHashLength]
}

// cleanFileName keeps letters, digits, dot, dash and underscore; everything else becomes "_".
func cleanFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") {
		return "", errBadFileName
	}
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == maxNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		n++
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "", errBadFileName
	}
	return out, nil
}
