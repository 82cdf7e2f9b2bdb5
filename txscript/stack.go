// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// maxStackSize is the maximum combined number of elements allowed across
// the main and alt stacks at any point during execution.
const maxStackSize = 1000

// stack represents a stack of byte arrays, used both for the main data
// stack and the alt stack during script execution. Depth accounting for
// maxStackSize is the caller's responsibility (the engine tracks both
// stacks together), since a single stack doesn't know about its sibling.
type stack struct {
	items [][]byte
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int {
	return len(s.items)
}

// PushByteArray pushes the given byte array onto the top of the stack.
func (s *stack) PushByteArray(so []byte) {
	s.items = append(s.items, so)
}

// PushInt converts the provided scriptNum to the appropriate type of stack
// byte array and pushes it onto the top of the stack.
func (s *stack) PushInt(val scriptNum) {
	s.PushByteArray(val.Bytes())
}

// PushBool converts the provided boolean to a canonical byte array and
// pushes it onto the top of the stack.
func (s *stack) PushBool(val bool) {
	if val {
		s.PushByteArray([]byte{1})
		return
	}
	s.PushByteArray(nil)
}

// PopByteArray pops the value off the top of the stack and returns it.
func (s *stack) PopByteArray() ([]byte, error) {
	so, err := s.PeekByteArray(0)
	if err != nil {
		return nil, err
	}
	s.items = s.items[:len(s.items)-1]
	return so, nil
}

// PopInt pops the value off the top of the stack, converts it into a
// script number, and returns it.
func (s *stack) PopInt() (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return MakeScriptNum(so, true, maxScriptNumLen)
}

// PopBool pops the value off the top of the stack, converts it into a bool,
// and returns it.
func (s *stack) PopBool() (bool, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// PeekByteArray returns the Nth item on the stack without removing it.
func (s *stack) PeekByteArray(idx int) ([]byte, error) {
	sz := len(s.items)
	if idx < 0 || idx >= sz {
		return nil, scriptError(ErrInvalidStackOperation,
			"attempt to access element beyond top of stack")
	}
	return s.items[sz-idx-1], nil
}

// nipN removes the Nth object on the stack.
func (s *stack) nipN(idx int) error {
	sz := len(s.items)
	if idx < 0 || idx >= sz {
		return scriptError(ErrInvalidStackOperation,
			"attempt to access element beyond top of stack")
	}
	s.items = append(s.items[:sz-idx-1], s.items[sz-idx:]...)
	return nil
}

// Tuck copies the item at the top of the stack and inserts it before the
// 2nd to top item.
func (s *stack) Tuck() error {
	so2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	so1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	s.PushByteArray(so2)
	s.PushByteArray(so1)
	s.PushByteArray(so2)
	return nil
}

// DropN removes the top N items from the stack.
func (s *stack) DropN(n int) error {
	for ; n > 0; n-- {
		if _, err := s.PopByteArray(); err != nil {
			return err
		}
	}
	return nil
}

// DupN duplicates the top N items on the stack.
func (s *stack) DupN(n int) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// RotN rotates the top 3N items on the stack to the left N times.
func (s *stack) RotN(n int) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	entry := 3*n - 1
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		if err := s.nipN(entry); err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// SwapN swaps the top N items on the stack with those below them.
func (s *stack) SwapN(n int) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	entry := 2*n - 1
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		if err := s.nipN(entry); err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// OverN copies N items N items back to the top of the stack.
func (s *stack) OverN(n int) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "n must be >= 1")
	}
	entry := 2*n - 1
	for ; n > 0; n-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// asBool casts the passed byte array to a bool using the consensus rule: a
// byte string is true iff any byte is non-zero, except a final 0x80
// (negative zero) which counts as false.
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// fromBool converts a boolean into the appropriate byte array.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}
