// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// IndexFiles lists the files under path with one of the extensions, in
// lexical order.
func IndexFiles(path string, extensions ...string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(path, func(s string, d fs.DirEntry, e error) error {
		if e != nil {
			return e
		}
		if !d.IsDir() && slices.Contains(extensions, strings.ToLower(filepath.Ext(s))) {
			files = append(files, s)
		}
		return nil
	})
	return files, err
}
