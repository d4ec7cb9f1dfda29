// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

// Package respond provides JSON response helpers for the operational
// endpoints.
//
// # Architecture
//
// The portal renders HTML everywhere a person looks; its only JSON surface
// is the liveness and readiness probes consumed by orchestrators. This
// package centralizes their envelope so both probes stay byte-compatible
// with the monitoring stack.
package respond

import (
	"encoding/json"
	"net/http"
)

// CheckResult reports the outcome of one readiness dependency check.
type CheckResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// StatusEnvelope is the JSON envelope shared by the probe endpoints.
type StatusEnvelope struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}
