// Package util provides content hashing and path helpers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mitchellh/go-homedir"
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// ExpandPath resolves a leading "~" to the current user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("error expanding path %q: %w", path, err)
	}
	return expanded, nil
}
