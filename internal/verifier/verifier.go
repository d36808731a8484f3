// Package verifier checks the integrity of a generated output tree.
package verifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dbsmedya/nlplaces/internal/logger"
)

// VerificationMethod defines how to verify an output tree.
type VerificationMethod string

const (
	// MethodCount compares the number of files on disk with the number written (fast)
	MethodCount VerificationMethod = "count"
	// MethodSHA256 also compares the tree digest against an expected value
	MethodSHA256 VerificationMethod = "sha256"
	// MethodSkip skips verification entirely
	MethodSkip VerificationMethod = "skip"
)

// TreeDigest summarizes an output tree.
type TreeDigest struct {
	Files  int
	Bytes  int64
	SHA256 string
}

// Digest walks root in lexical order and hashes every regular file's
// slash-separated relative path and content. Two trees with the same files and
// bytes have the same digest regardless of modification times.
func Digest(root string) (*TreeDigest, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(paths)

	h := sha256.New()
	d := &TreeDigest{}
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(h, "%s\x00", filepath.ToSlash(rel))

		n, err := hashFile(h, path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(h, "\x00%d\x00", n)

		d.Files++
		d.Bytes += n
	}
	d.SHA256 = hex.EncodeToString(h.Sum(nil))
	return d, nil
}

func hashFile(w io.Writer, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return n, nil
}

// Verifier checks a tree against what a run wrote.
type Verifier struct {
	method VerificationMethod
	logger *logger.Logger
}

// NewVerifier creates a verifier. An empty method defaults to MethodCount.
func NewVerifier(method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	if method == "" {
		method = MethodCount
	}
	switch method {
	case MethodCount, MethodSHA256, MethodSkip:
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", method)
	}
	return &Verifier{method: method, logger: log}, nil
}

// Verify digests root and checks it holds exactly wantFiles files. With
// MethodSHA256 and a non-empty wantSHA the digest must match too. The digest
// is returned whenever it was computed.
func (v *Verifier) Verify(root string, wantFiles int, wantSHA string) (*TreeDigest, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return nil, nil
	}

	d, err := Digest(root)
	if err != nil {
		return nil, err
	}

	if d.Files != wantFiles {
		v.logger.Errorw("Verification FAILED", "root", root, "expected_files", wantFiles, "found_files", d.Files)
		return d, fmt.Errorf("verification mismatch in %s: expected %d files, found %d", root, wantFiles, d.Files)
	}

	if v.method == MethodSHA256 && wantSHA != "" && d.SHA256 != wantSHA {
		v.logger.Errorw("Verification FAILED", "root", root, "expected_sha256", wantSHA, "sha256", d.SHA256)
		return d, fmt.Errorf("verification mismatch in %s: digest %s, expected %s", root, d.SHA256, wantSHA)
	}

	v.logger.Infow("Verification complete",
		"method", v.method,
		"files", d.Files,
		"bytes", d.Bytes,
		"sha256", d.SHA256,
	)
	return d, nil
}
