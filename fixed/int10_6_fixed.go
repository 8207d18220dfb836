package fixed

import "fmt"

func Int10_6U(i int) Int10_6     { return Int10_6(i << 6) }
func Int10_6F(f float32) Int10_6 { return Int10_6(f * (1 << 6)) }

func (x Int10_6) Floor() int            { return int(x >> 6) }
func (x Int10_6) Ceil() int             { return int((int32(x) + (1<<6 - 1)) >> 6) }
func (x Int10_6) Mul(y Int10_6) Int10_6 { return Int10_6((int32(x) * int32(y)) >> 6) }
func (x Int10_6) Div(y Int10_6) Int10_6 { return Int10_6(int32(x) << 6 / int32(y)) }

func (x Int10_6) String() string {
	const shift, mask = 6, 1<<6 - 1
	return fmt.Sprintf("%d:%02d", int32(x>>shift), int32(x&mask))
}
