// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless client application runtime.
//
// It wires the artifact fetcher, local catalog storage, client services
// and background synchronization into a single process lifecycle.
package client
