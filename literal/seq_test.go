package literal

import "testing"

func TestLiteralBasic(t *testing.T) {
	tests := []struct {
		name     string
		bytes    []byte
		complete bool
		wantLen  int
	}{
		{"simple complete literal", []byte("hello"), true, 5},
		{"incomplete literal", []byte("test"), false, 4},
		{"empty literal", []byte{}, true, 0},
		{"single byte", []byte("x"), true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit := NewLiteral(tt.bytes, tt.complete)
			if got := lit.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
			if lit.Complete != tt.complete {
				t.Errorf("Complete = %v, want %v", lit.Complete, tt.complete)
			}
		})
	}
}

func TestSeqCreation(t *testing.T) {
	tests := []struct {
		name     string
		literals []Literal
		wantLen  int
		isEmpty  bool
	}{
		{"empty sequence", []Literal{}, 0, true},
		{"single literal", []Literal{NewLiteral([]byte("test"), true)}, 1, false},
		{
			"multiple literals",
			[]Literal{
				NewLiteral([]byte("foo"), true),
				NewLiteral([]byte("bar"), true),
				NewLiteral([]byte("baz"), true),
			},
			3, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSeq(tt.literals...)
			if got := seq.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
			if got := seq.IsEmpty(); got != tt.isEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.isEmpty)
			}
		})
	}
}

func TestSeqGet(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("first"), true),
		NewLiteral([]byte("second"), false),
		NewLiteral([]byte("third"), true),
	)

	tests := []struct {
		index        int
		wantBytes    string
		wantComplete bool
	}{
		{0, "first", true},
		{1, "second", false},
		{2, "third", true},
	}

	for _, tt := range tests {
		lit := seq.Get(tt.index)
		if string(lit.Bytes) != tt.wantBytes {
			t.Errorf("Get(%d).Bytes = %q, want %q", tt.index, lit.Bytes, tt.wantBytes)
		}
		if lit.Complete != tt.wantComplete {
			t.Errorf("Get(%d).Complete = %v, want %v", tt.index, lit.Complete, tt.wantComplete)
		}
	}
}

func TestSeqMinimize(t *testing.T) {
	tests := []struct {
		name      string
		input     []Literal
		wantCount int
		wantBytes []string
	}{
		{
			name: "prefix redundancy - foobar covered by foo",
			input: []Literal{
				NewLiteral([]byte("foo"), true),
				NewLiteral([]byte("foobar"), true),
			},
			wantCount: 1,
			wantBytes: []string{"foo"},
		},
		{
			name: "chain redundancy - a covers ab covers abc",
			input: []Literal{
				NewLiteral([]byte("a"), true),
				NewLiteral([]byte("ab"), true),
				NewLiteral([]byte("abc"), true),
			},
			wantCount: 1,
			wantBytes: []string{"a"},
		},
		{
			name: "no redundancy - different prefixes",
			input: []Literal{
				NewLiteral([]byte("hello"), true),
				NewLiteral([]byte("world"), true),
			},
			wantCount: 2,
			wantBytes: []string{"hello", "world"},
		},
		{
			name: "partial redundancy",
			input: []Literal{
				NewLiteral([]byte("test"), true),
				NewLiteral([]byte("testing"), true),
				NewLiteral([]byte("hello"), true),
			},
			wantCount: 2,
			wantBytes: []string{"test", "hello"},
		},
		{
			name:      "empty sequence",
			input:     []Literal{},
			wantCount: 0,
			wantBytes: []string{},
		},
		{
			name:      "single literal",
			input:     []Literal{NewLiteral([]byte("single"), true)},
			wantCount: 1,
			wantBytes: []string{"single"},
		},
		{
			name: "all same prefix",
			input: []Literal{
				NewLiteral([]byte("pre"), true),
				NewLiteral([]byte("prefix"), true),
				NewLiteral([]byte("prepare"), true),
			},
			wantCount: 1,
			wantBytes: []string{"pre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSeq(tt.input...)
			seq.Minimize()

			if got := seq.Len(); got != tt.wantCount {
				t.Errorf("Minimize() resulted in %d literals, want %d", got, tt.wantCount)
			}

			gotBytes := make(map[string]bool)
			for i := 0; i < seq.Len(); i++ {
				gotBytes[string(seq.Get(i).Bytes)] = true
			}
			for _, want := range tt.wantBytes {
				if !gotBytes[want] {
					t.Errorf("Minimize() missing expected literal %q", want)
				}
			}
			if len(gotBytes) != len(tt.wantBytes) {
				t.Errorf("Minimize() got %d unique literals, want %d", len(gotBytes), len(tt.wantBytes))
			}
		})
	}
}

func TestSeqMethodsNil(t *testing.T) {
	var seq *Seq
	if seq.Len() != 0 {
		t.Errorf("nil.Len() = %d, want 0", seq.Len())
	}
	if !seq.IsEmpty() {
		t.Errorf("nil.IsEmpty() = false, want true")
	}
}

func TestIsPrefix(t *testing.T) {
	tests := []struct {
		prefix []byte
		s      []byte
		want   bool
	}{
		{[]byte("hel"), []byte("hello"), true},
		{[]byte("hello"), []byte("hello"), true},
		{[]byte("hello"), []byte("hel"), false},
		{[]byte("abc"), []byte("def"), false},
		{[]byte{}, []byte("test"), true},
		{[]byte("test"), []byte{}, false},
	}

	for _, tt := range tests {
		got := isPrefix(tt.prefix, tt.s)
		if got != tt.want {
			t.Errorf("isPrefix(%q, %q) = %v, want %v", tt.prefix, tt.s, got, tt.want)
		}
	}
}

func BenchmarkMinimize(b *testing.B) {
	b.ReportAllocs()

	literals := make([]Literal, 100)
	for i := 0; i < 100; i++ {
		literals[i] = NewLiteral([]byte{byte(i), byte(i + 1)}, true)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq := NewSeq(literals...)
		seq.Minimize()
	}
}
