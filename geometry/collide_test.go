package geometry

import (
	"math"
	"math/rand"
	"testing"
)

func TestContainsIsClosed(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{5, 5}, true},
		{"top left corner", Point{0, 0}, true},
		{"bottom right corner", Point{10, 10}, true},
		{"right edge", Point{10, 3}, true},
		{"left of rect", Point{-0.001, 5}, false},
		{"below rect", Point{5, 10.001}, false},
		{"nan", Point{math.NaN(), 5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Contains(r, tc.p); got != tc.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", r, tc.p, got, tc.want)
			}
		})
	}
}

func TestCollidesPairs(t *testing.T) {
	unit := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}

	tests := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"point point same", Point{1, 1}, Point{1, 1}, true},
		{"point point apart", Point{1, 1}, Point{1, 2}, false},
		{"point in rect", Point{3, 3}, unit, true},
		{"point outside rect", Point{11, 3}, unit, false},
		{"point on circle edge", Point{3, 0}, Circle{0, 0, 3}, true},
		{"point outside circle", Point{3, 0.1}, Circle{0, 0, 3}, false},
		{"point on line", Point{5, 5}, Line{Point{0, 0}, Point{10, 10}}, true},
		{"point beyond line end", Point{11, 11}, Line{Point{0, 0}, Point{10, 10}}, false},
		{"rects overlap", unit, Rect{5, 5, 15, 15}, true},
		{"rects share edge", unit, Rect{10, 0, 20, 10}, true},
		{"rects apart", unit, Rect{11, 0, 20, 10}, false},
		{"rect circle corner miss", unit, Circle{12, 12, 2}, false},
		{"rect circle corner hit", unit, Circle{12, 12, 3}, true},
		{"rect circle inside", unit, Circle{5, 5, 1}, true},
		{"rect line crossing", unit, Line{Point{-5, 5}, Point{15, 5}}, true},
		{"rect line inside", unit, Line{Point{2, 2}, Point{3, 3}}, true},
		{"rect line diagonal miss", unit, Line{Point{11, -5}, Point{20, 5}}, false},
		{"circles touch", Circle{0, 0, 1}, Circle{2, 0, 1}, true},
		{"circles apart", Circle{0, 0, 1}, Circle{2.1, 0, 1}, false},
		{"circle line near", Circle{5, 1, 1}, Line{Point{0, 0}, Point{10, 0}}, true},
		{"circle line far", Circle{5, 2, 1}, Line{Point{0, 0}, Point{10, 0}}, false},
		{"lines cross", Line{Point{0, 0}, Point{10, 10}}, Line{Point{0, 10}, Point{10, 0}}, true},
		{"lines parallel", Line{Point{0, 0}, Point{10, 0}}, Line{Point{0, 1}, Point{10, 1}}, false},
		{"lines collinear overlap", Line{Point{0, 0}, Point{5, 0}}, Line{Point{4, 0}, Point{9, 0}}, true},
		{"lines collinear apart", Line{Point{0, 0}, Point{3, 0}}, Line{Point{4, 0}, Point{9, 0}}, false},
		{"degenerate line is point", Line{Point{2, 2}, Point{2, 2}}, unit, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(tc.a, tc.b); got != tc.want {
				t.Errorf("Collides(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := Collides(tc.b, tc.a); got != tc.want {
				t.Errorf("Collides(%v, %v) = %v, want %v (reversed)", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestDegenerateLineActsAsPoint(t *testing.T) {
	p := Point{2, 2}
	dot := Line{A: p, B: p}

	shapes := []struct {
		name string
		s    Shape
	}{
		{"same point", p},
		{"nearby point", Point{2, 2 + 1e-10}},
		{"distant point", Point{3, 2}},
		{"same dot", dot},
		{"nearby dot", Line{A: Point{2 + 1e-10, 2}, B: Point{2 + 1e-10, 2}}},
		{"rect edge", Rect{2, 0, 4, 4}},
		{"rect apart", Rect{2.5, 0, 4, 4}},
		{"circle edge", Circle{4, 2, 2}},
		{"line through", Line{Point{0, 0}, Point{4, 4}}},
		{"line grazing", Line{Point{0, 2 + 1e-10}, Point{4, 2 + 1e-10}}},
		{"line apart", Line{Point{0, 3}, Point{4, 3}}},
	}

	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			want := Collides(p, tc.s)
			if got := Collides(dot, tc.s); got != want {
				t.Errorf("Collides(dot, %v) = %v, point gives %v", tc.s, got, want)
			}
			if got := Collides(tc.s, dot); got != want {
				t.Errorf("Collides(%v, dot) = %v, point gives %v", tc.s, got, want)
			}
		})
	}
}

func TestContainmentImpliesCollision(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	area := Rect{Left: -50, Top: -50, Right: 50, Bottom: 50}

	for i := 0; i < 500; i++ {
		p := Point{
			X: area.Left + rng.Float64()*area.Width(),
			Y: area.Top + rng.Float64()*area.Height(),
		}
		c := Circle{X: p.X, Y: p.Y, R: rng.Float64() * 5}
		if ContainsCircle(area, c) && !Collides(area, c) {
			t.Fatalf("circle %v contained by %v but does not collide", c, area)
		}
		if Contains(area, p) && !Collides(p, area) {
			t.Fatalf("point %v contained by %v but does not collide", p, area)
		}
	}
}

func TestSplitTilesRect(t *testing.T) {
	r := Rect{Left: -3, Top: 2, Right: 9, Bottom: 6}
	split := r.Center()

	want := [4]Rect{
		{Left: -3, Top: 2, Right: 3, Bottom: 4},
		{Left: 3, Top: 2, Right: 9, Bottom: 4},
		{Left: -3, Top: 4, Right: 3, Bottom: 6},
		{Left: 3, Top: 4, Right: 9, Bottom: 6},
	}
	for i := range want {
		if got := r.Split(split, i); got != want[i] {
			t.Errorf("Split(%d) = %v, want %v", i, got, want[i])
		}
		if got := r.Quadrant(i); got != want[i] {
			t.Errorf("Quadrant(%d) = %v, want %v", i, got, want[i])
		}
	}
}

func TestBounds(t *testing.T) {
	if got, want := (Circle{X: 1, Y: 2, R: 3}).Bounds(), (Rect{-2, -1, 4, 5}); got != want {
		t.Errorf("Circle.Bounds() = %v, want %v", got, want)
	}
	if got, want := (Line{A: Point{5, 1}, B: Point{2, 8}}).Bounds(), (Rect{2, 1, 5, 8}); got != want {
		t.Errorf("Line.Bounds() = %v, want %v", got, want)
	}
	if !(Point{1, 2}).IsFinite() || (Point{math.Inf(1), 0}).IsFinite() {
		t.Error("IsFinite misreports")
	}
}
