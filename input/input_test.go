package input

import "testing"

func press(k Key) Event   { return Event{k, Press} }
func release(k Key) Event { return Event{k, Release} }

func TestTracker(t *testing.T) {
	var tr Tracker
	if tr.Held() {
		t.Fatal("zero Tracker held")
	}

	tr.Update(press(KeyLeftSuper))
	if !tr.Held() {
		t.Fatal("left press not held")
	}
	tr.Update(release(KeyLeftSuper))
	if tr.Held() {
		t.Fatal("left release still held")
	}

	tr.Update(press(KeyLeftSuper))
	tr.Update(press(KeyRightSuper))
	tr.Update(release(KeyRightSuper))
	if !tr.Held() {
		t.Fatal("releasing right only cleared held")
	}
	tr.Update(release(KeyLeftSuper))
	if tr.Held() {
		t.Fatal("releasing both still held")
	}
}

func TestTrackerIgnores(t *testing.T) {
	var tr Tracker
	tr.Update(press(KeyRightSuper))
	for _, ev := range []Event{press(KeyQ), release(KeyS), {KeyRightSuper, Repeat}, press(KeyUnknown)} {
		tr.Update(ev)
		if !tr.Held() {
			t.Fatalf("Update(%+v) changed held state", ev)
		}
	}
}

func TestPressed(t *testing.T) {
	if !press(KeyQ).Pressed(KeyQ) {
		t.Fatal("press Q not Pressed(KeyQ)")
	}
	if release(KeyQ).Pressed(KeyQ) || press(KeyS).Pressed(KeyQ) {
		t.Fatal("unexpected Pressed(KeyQ)")
	}
}
