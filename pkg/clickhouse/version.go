// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package clickhouse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ServerVersion retrieves the version string reported by the store
func (c *Client) ServerVersion() (string, error) {
	result, err := c.Query("SELECT version() AS version", nil)
	if err != nil {
		return "", errors.Wrap(err, "Failed to retrieve server version")
	}
	if len(result.Rows) == 0 {
		return "", errors.New("Server returned no rows for version query")
	}
	version, ok := result.Rows[0]["version"].(string)
	if !ok {
		return "", errors.New("Server returned a non-string version")
	}
	return version, nil
}

// CompareVersions performs a component-wise numeric comparison of two
// dotted version strings.  Missing components are treated as 0.  Returns
// a negative number if a < b, 0 if equal and a positive number if a > b.
func CompareVersions(a string, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	length := len(aParts)
	if len(bParts) > length {
		length = len(bParts)
	}

	for i := 0; i < length; i++ {
		aComponent := versionComponent(aParts, i)
		bComponent := versionComponent(bParts, i)
		if aComponent != bComponent {
			return aComponent - bComponent
		}
	}
	return 0
}

func versionComponent(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	component, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return component
}

// MeetsMinimumVersion reports whether the store's version is at least the
// required one
func (c *Client) MeetsMinimumVersion(required string) (bool, error) {
	version, err := c.ServerVersion()
	if err != nil {
		return false, err
	}
	return CompareVersions(version, required) >= 0, nil
}

// ApplySettings attempts to enable each of the given settings on the
// store.  A setting the store does not know about is a version
// compatibility gap rather than a fault, so it is skipped with a warning
// instead of failing the caller.  Returns the names of the settings that
// were applied.
func (c *Client) ApplySettings(settings map[string]string) ([]string, error) {
	var applied []string
	for name, value := range settings {
		err := c.Execute(fmt.Sprintf("SET %s = %s", name, value))
		if err != nil {
			if isUnknownSetting(err) {
				c.log.Warnf("Setting %s not supported by server; skipping", name)
				continue
			}
			return applied, errors.Wrap(err, fmt.Sprintf("Failed to apply setting %s", name))
		}
		applied = append(applied, name)
	}
	return applied, nil
}

// isUnknownSetting detects the store's "unknown setting" response
func isUnknownSetting(err error) bool {
	executeErr, ok := err.(*ExecuteError)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(executeErr.Body), "unknown setting")
}
