package fixed

type Int8 int8
type Point8 = Point[Int8]
type Rectangle8 = Rectangle[Int8]

func (x Int8) Mul(y Int8) Int8 { return x * y }
func (x Int8) Div(y Int8) Int8 { return x / y }

type UInt8 uint8
type PointU8 = Point[UInt8]
type RectangleU8 = Rectangle[UInt8]

func (x UInt8) Mul(y UInt8) UInt8 { return x * y }
func (x UInt8) Div(y UInt8) UInt8 { return x / y }

type Int16 int16
type Point16 = Point[Int16]
type Rectangle16 = Rectangle[Int16]

func (x Int16) Mul(y Int16) Int16 { return x * y }
func (x Int16) Div(y Int16) Int16 { return x / y }

type UInt16 uint16
type PointU16 = Point[UInt16]
type RectangleU16 = Rectangle[UInt16]

func (x UInt16) Mul(y UInt16) UInt16 { return x * y }
func (x UInt16) Div(y UInt16) UInt16 { return x / y }
