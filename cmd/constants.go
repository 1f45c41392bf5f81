// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package cmd

const (
	// AppVersion is the current version of the bridge
	AppVersion = "0.3.0"

	// AppName is the name of the application to use in logging / places that require the artifact
	AppName = "clickbridge"
)
