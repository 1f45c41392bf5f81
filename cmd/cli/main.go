// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package main

func main() {
	RunCli()
}
