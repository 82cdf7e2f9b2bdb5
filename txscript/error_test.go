// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// tstCheckScriptError ensures the type of two passed errors are of the
// same type (either both nil or both of type Error) and their error codes
// match when not nil.
func tstCheckScriptError(gotErr, wantErr error) error {
	// Ensure the error code is of the expected type and the error
	// code matches the value specified in the test instance.
	if reflectIsNil(wantErr) {
		if reflectIsNil(gotErr) {
			return nil
		}
		return fmt.Errorf("unexpected error -- got %v, want none", gotErr)
	}

	// Ensure a wanted error was actually returned.
	if reflectIsNil(gotErr) {
		return fmt.Errorf("failed to receive expected error -- got none, "+
			"want %v", wantErr)
	}

	gotCode, ok := gotErr.(Error)
	if !ok {
		return fmt.Errorf("unexpected error type - got %T, want txscript.Error",
			gotErr)
	}

	wantCode := wantErr.(Error)
	if gotCode.ErrorCode != wantCode.ErrorCode {
		return fmt.Errorf("mismatched error code - got %v (%v), want %v",
			gotCode.ErrorCode, gotErr, wantCode.ErrorCode)
	}

	return nil
}

func reflectIsNil(err error) bool {
	return err == nil
}
