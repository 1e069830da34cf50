// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend is the HTTP client for the scheduling assistant API.
//
// The API has a single endpoint, POST {base}/chat, which takes the new
// message plus the serialized conversation history and returns a reply
// attributed to one of the backend agents.
//
// # Key Types
//
//   - Client: configured API client with optional retries and rate limit
//   - Request: the request body
//   - StatusError: non-2xx response
//
// # Usage
//
//	client, err := backend.NewClient("http://localhost:8000")
//	if err != nil {
//		return err
//	}
//	reply, err := client.WithTimeout(30 * time.Second).Chat(ctx, backend.Request{
//		Message: "Run sync",
//		History: history,
//	})
package backend
