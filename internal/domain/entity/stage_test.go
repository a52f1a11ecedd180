package entity

import "testing"

func TestStageOrder(t *testing.T) {
	if !StagePreBoarding.Before(StageDay1) {
		t.Error("pre-boarding should precede day-1")
	}
	if !StageDay1.Before(StageMonth1) {
		t.Error("day-1 should precede month-1")
	}
	if StageWeek1.Before(StageDay1) {
		t.Error("week-1 should not precede day-1")
	}
	if Stage("unknown").Order() <= StageMonth1.Order() {
		t.Error("unknown stage should sort after month-1")
	}
}

func TestStageNext(t *testing.T) {
	tests := []struct {
		stage   Stage
		next    Stage
		hasNext bool
	}{
		{StagePreBoarding, StageDay1, true},
		{StageDay1, StageWeek1, true},
		{StageWeek1, StageMonth1, true},
		{StageMonth1, "", false},
		{Stage("unknown"), "", false},
	}

	for _, tt := range tests {
		next, ok := tt.stage.Next()
		if ok != tt.hasNext {
			t.Errorf("%s.Next() ok = %v, want %v", tt.stage, ok, tt.hasNext)
		}
		if ok && next != tt.next {
			t.Errorf("%s.Next() = %s, want %s", tt.stage, next, tt.next)
		}
	}
}

func TestStageIsValid(t *testing.T) {
	for _, s := range Stages() {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Stage("day-2").IsValid() {
		t.Error("day-2 should not be valid")
	}
	if Stage("").IsValid() {
		t.Error("empty stage should not be valid")
	}
}
