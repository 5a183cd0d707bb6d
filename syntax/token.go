// Copyright 2026 The foolc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Token is a binary operator.
type Token int8

const (
	ILLEGAL Token = iota
	EQL           // ==
	PLUS          // +
	STAR          // *
)

var tokenNames = [...]string{
	ILLEGAL: "illegal token",
	EQL:     "==",
	PLUS:    "+",
	STAR:    "*",
}

func (tok Token) String() string {
	if 0 <= tok && int(tok) < len(tokenNames) {
		return tokenNames[tok]
	}
	return "illegal token"
}
