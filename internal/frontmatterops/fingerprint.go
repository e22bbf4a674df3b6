// Package frontmatterops computes the stable identity fields stamped into
// generated documents: a content fingerprint and a path-derived uid.
package frontmatterops

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/webdoc/internal/frontmatter"
)

const (
	// KeyUID is the front matter key holding the document uid.
	KeyUID = "uid"
	// KeyGenerated holds the generation date and is excluded from the fingerprint.
	KeyGenerated = "generated"
)

// uidNamespace scopes name-based uids to webdoc output paths.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://webdoc.invalid/output"))

// ComputeFingerprint hashes fields and body with mdfp. The fingerprint, uid and
// generated keys are excluded so regenerating unchanged content keeps the value.
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case mdfp.FingerprintField, KeyUID, KeyGenerated:
			continue
		}
		forHash[k] = v
	}

	serialized := ""
	if len(forHash) > 0 {
		out, err := frontmatter.SerializeYAML(forHash)
		if err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(string(out), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(serialized, string(body)), nil
}

// UIDForPath returns a deterministic uid for an output path, so the same page
// keeps its uid across runs.
func UIDForPath(relPath string) string {
	return uuid.NewSHA1(uidNamespace, []byte(relPath)).String()
}

// Stamp sets uid and fingerprint on fields for the document at relPath.
func Stamp(fields map[string]any, body []byte, relPath string) error {
	if fields == nil {
		return errors.New("fields map is nil")
	}
	if _, ok := fields[KeyUID]; !ok {
		fields[KeyUID] = UIDForPath(relPath)
	}
	fp, err := ComputeFingerprint(fields, body)
	if err != nil {
		return err
	}
	fields[mdfp.FingerprintField] = fp
	return nil
}
