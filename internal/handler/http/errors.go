// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidSecretToken is returned when the secret token header of a
	// webhook request does not match the configured secret.
	ErrInvalidSecretToken = errors.New("invalid webhook secret token")

	// ErrDecodingUpdate is returned when a webhook body is not an update.
	ErrDecodingUpdate = errors.New("error decoding update")
)
