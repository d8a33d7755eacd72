// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import "github.com/tidwall/gjson"

// StructuredJSON reports whether body is a structured JSON value, that
// is a JSON object or array. A nil or empty body, a body that is not
// valid JSON, and a bare JSON scalar (string, number, boolean, null)
// all report false.
func StructuredJSON(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	if !gjson.ValidBytes(body) {
		return false
	}
	v := gjson.ParseBytes(body)
	return v.IsObject() || v.IsArray()
}
