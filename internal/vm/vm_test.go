package vm

import "testing"

func encodeConstant(size Size, bits int64) []byte {
	out := []byte{byte(OpConstant), byte(size)}
	for i := 0; i < int(size); i++ {
		out = append(out, byte(bits>>(8*i)))
	}
	return out
}

// push 2, push 3, add, return -> 5
func TestVMAddReturnsSum(t *testing.T) {
	code := append([]byte{}, encodeConstant(Size32, 2)...)
	code = append(code, encodeConstant(Size32, 3)...)
	code = append(code, byte(OpAdd), byte(Size32))
	code = append(code, byte(OpReturn), byte(Size32))

	result, err := New(code).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Bits != 5 {
		t.Fatalf("expected 5, got %d", result.Bits)
	}
}

// push 7, push 0, divide, return -> runtime error
func TestVMDivideByZeroIsRuntimeError(t *testing.T) {
	code := append([]byte{}, encodeConstant(Size32, 7)...)
	code = append(code, encodeConstant(Size32, 0)...)
	code = append(code, byte(OpDivide), byte(Size32))
	code = append(code, byte(OpReturn), byte(Size32))

	_, err := New(code).Run()
	verr, ok := err.(*Error)
	if !ok || !verr.Runtime {
		t.Fatalf("expected a runtime Error, got %v", err)
	}
}

// return with an empty stack -> runtime error (stack underflow)
func TestVMEmptyStackReturnIsRuntimeError(t *testing.T) {
	code := []byte{byte(OpReturn), byte(Size32)}

	_, err := New(code).Run()
	verr, ok := err.(*Error)
	if !ok || !verr.Runtime {
		t.Fatalf("expected a runtime Error, got %v", err)
	}
}
