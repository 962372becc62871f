package game

import "testing"

func TestInputBufferResolve(t *testing.T) {
	var b InputBuffer
	b.Put(3, InputJump)
	b.Put(5, InputDuck)
	b.Put(7, InputUnduck)

	if got := b.Resolve(2); got != InputNone {
		t.Fatalf("resolve(2) = %v, want None", got)
	}
	if got := b.Resolve(3); got != InputJump {
		t.Fatalf("resolve(3) = %v, want Jump", got)
	}
	if got := b.Resolve(4); got != InputNone {
		t.Fatalf("resolve(4) = %v, want None", got)
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	// tick 5 is skipped entirely; its input must not leak into tick 6
	if got := b.Resolve(6); got != InputNone {
		t.Fatalf("resolve(6) = %v, want None", got)
	}
	if b.Len() != 1 {
		t.Fatalf("stale entry was kept, len = %d", b.Len())
	}
	if got := b.Resolve(7); got != InputUnduck {
		t.Fatalf("resolve(7) = %v, want Unduck", got)
	}
}

func TestInputBufferNextExpected(t *testing.T) {
	var b InputBuffer
	if got := b.NextExpected(9); got != 9 {
		t.Fatalf("empty buffer next = %d, want 9", got)
	}
	b.Put(12, InputJump)
	if got := b.NextExpected(9); got != 13 {
		t.Fatalf("next = %d, want 13", got)
	}
}

func TestInputBufferPutKeepsOrderAndReplaces(t *testing.T) {
	var b InputBuffer
	b.Put(8, InputJump)
	b.Put(4, InputDuck)
	b.Put(6, InputJump)
	b.Put(4, InputUnduck)

	want := []PendingInput{{4, InputUnduck}, {6, InputJump}, {8, InputJump}}
	if len(b.pending) != len(want) {
		t.Fatalf("pending = %v, want %v", b.pending, want)
	}
	for i := range want {
		if b.pending[i] != want[i] {
			t.Fatalf("pending = %v, want %v", b.pending, want)
		}
	}
}

func TestInputText(t *testing.T) {
	for _, in := range []Input{InputNone, InputJump, InputDuck, InputUnduck} {
		b, err := in.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", in, err)
		}
		var got Input
		if err := got.UnmarshalText(b); err != nil || got != in {
			t.Fatalf("round trip %q = %v, %v", b, got, err)
		}
	}
	var in Input
	if err := in.UnmarshalText([]byte("Fly")); err == nil {
		t.Fatalf("expected error for unknown input")
	}
}
