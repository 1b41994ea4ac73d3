package query

import "testing"

func TestStack(t *testing.T) {
	s := stack[Token]{}

	if tk := s.pop(); tk != nil {
		t.Error("expected empty value from an empty stack")
		return
	}

	if _, ok := s.peek(); ok {
		t.Error("expected peek to fail on an empty stack")
		return
	}

	tk1 := Name("1")
	s.push(tk1)

	if tk := s.pop(); tk != tk1 {
		t.Errorf("expected %+v, but got %+v", tk1, tk)
		return
	}

	tk2 := Name("2")
	tk3 := Name("3")
	s.push(tk1)
	s.push(tk3)
	s.push(tk2)

	if tk, ok := s.peek(); !ok || tk != tk2 {
		t.Errorf("expected peek to return %+v, but got %+v", tk2, tk)
		return
	}

	if s.len() != 3 {
		t.Errorf("expected 3 elements, but got %d", s.len())
		return
	}

	if tk := s.pop(); tk != tk2 {
		t.Errorf("expected %+v, but got %+v", tk2, tk)
		return
	}

	if tk := s.pop(); tk != tk3 {
		t.Errorf("expected %+v, but got %+v", tk3, tk)
		return
	}

	if tk := s.pop(); tk != tk1 {
		t.Errorf("expected %+v, but got %+v", tk1, tk)
		return
	}

	if tk := s.pop(); tk != nil {
		t.Error("expected empty value from an empty stack")
		return
	}
}
