package drivertest

import "testing"

func TestAddFunctionCompiles(t *testing.T) {
	Run(t, "add.vl", []byte(`
		// Expect : compiled add.vl
		fn add(x: i32, y: i32) -> i32 {
			return x + y;
		}
	`))
}

func TestStructFieldAccessLowersToIR(t *testing.T) {
	Run(t, "point.vl", []byte(`
		struct Point { x: i32, y: i32 }

		// Expect : fn sum_x:
		fn sum_x(p: Point) -> i32 {
			return p.x;
		}
	`))
}

func TestGenericIdentityMonomorphizes(t *testing.T) {
	Run(t, "identity.vl", []byte(`
		fn identity<T>(x: T) -> T {
			return x;
		}

		// Expect : compiled identity.vl
		fn main() -> i32 {
			return identity<i32>(1);
		}
	`))
}

func TestTypeErrorIsReported(t *testing.T) {
	Run(t, "mismatch.vl", []byte(`
		// Expect : error
		fn bad() -> i32 {
			return true;
		}
	`))
}

func TestWhileLoopWithBreakCompiles(t *testing.T) {
	Run(t, "loop.vl", []byte(`
		// Expect : compiled loop.vl
		fn countdown(n: i32) -> i32 {
			while n > 0 {
				if n == 1 {
					break;
				}
				n = n - 1;
			}
			return n;
		}
	`))
}
