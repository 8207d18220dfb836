package fixed

// Value is any type representable in this package, i.e. integers and
// fixed-point types alike.
type Value interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Point is an X, Y coordinate pair, akin to image.Point but generic over
// the coordinate type.
type Point[T Value] struct {
	X, Y T
}

func Pt[T Value](x, y T) Point[T] { return Point[T]{x, y} }

func (p Point[T]) Add(q Point[T]) Point[T] { return Point[T]{p.X + q.X, p.Y + q.Y} }
func (p Point[T]) Sub(q Point[T]) Point[T] { return Point[T]{p.X - q.X, p.Y - q.Y} }

func (p Point[T]) In(r Rectangle[T]) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Rectangle contains the points with Min.X <= X < Max.X and likewise for
// Y, akin to image.Rectangle.
type Rectangle[T Value] struct {
	Min, Max Point[T]
}

func Rect[T Value](x0, y0, x1, y1 T) Rectangle[T] {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle[T]{Point[T]{x0, y0}, Point[T]{x1, y1}}
}

func (r Rectangle[T]) Dx() T { return r.Max.X - r.Min.X }
func (r Rectangle[T]) Dy() T { return r.Max.Y - r.Min.Y }

func (r Rectangle[T]) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

func (r Rectangle[T]) Add(p Point[T]) Rectangle[T] {
	return Rectangle[T]{r.Min.Add(p), r.Max.Add(p)}
}
