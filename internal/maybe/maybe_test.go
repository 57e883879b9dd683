package maybe

import (
	"strconv"
	"testing"
)

func TestSomeAndNone(t *testing.T) {
	some := Some(3)
	if !some.IsPresent() {
		t.Errorf("Some(3) should be present")
	}
	if v, ok := some.Get(); !ok || v != 3 {
		t.Errorf("Get() = (%d, %v), want (3, true)", v, ok)
	}

	none := None[int]()
	if none.IsPresent() {
		t.Errorf("None should be absent")
	}
	if v, ok := none.Get(); ok || v != 0 {
		t.Errorf("Get() = (%d, %v), want (0, false)", v, ok)
	}
}

func TestGetOrElse(t *testing.T) {
	if got := Some("a").GetOrElse("z"); got != "a" {
		t.Errorf("GetOrElse on Some = %q, want a", got)
	}
	if got := None[string]().GetOrElse("z"); got != "z" {
		t.Errorf("GetOrElse on None = %q, want z", got)
	}
}

func TestMap(t *testing.T) {
	if got := Map(Some(5), strconv.Itoa); !got.IsPresent() || got.GetOrElse("") != "5" {
		t.Errorf("Map(Some(5)) = %v, want Some(\"5\")", got)
	}
	if got := Map(None[int](), strconv.Itoa); got.IsPresent() {
		t.Errorf("Map(None) should stay None")
	}
}

func TestFlatMap(t *testing.T) {
	half := func(n int) Maybe[int] {
		if n%2 != 0 {
			return None[int]()
		}
		return Some(n / 2)
	}

	if got := FlatMap(Some(8), half); got.GetOrElse(-1) != 4 {
		t.Errorf("FlatMap(Some(8), half) = %v, want Some(4)", got)
	}
	if got := FlatMap(Some(7), half); got.IsPresent() {
		t.Errorf("FlatMap(Some(7), half) should be None")
	}
	if got := FlatMap(None[int](), half); got.IsPresent() {
		t.Errorf("FlatMap(None) should stay None")
	}
}
