package clock

import (
	"testing"
	"time"
)

func TestSystemNow(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("System.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2025, time.December, 21, 14, 0, 0, 0, time.Local)
	fake := NewFake(start)

	if got := fake.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}

	fake.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if got := fake.Now(); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeSet(t *testing.T) {
	fake := NewFake(time.Date(2025, time.December, 21, 14, 0, 0, 0, time.Local))
	target := time.Date(2025, time.December, 22, 9, 30, 0, 0, time.Local)

	fake.Set(target)
	if got := fake.Now(); !got.Equal(target) {
		t.Errorf("Now() after Set = %v, want %v", got, target)
	}
}
