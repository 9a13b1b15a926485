package domain_test

import (
	"reflect"
	"testing"

	"focusflow/internal/modules/stats/domain"
)

func TestTotalsBySubjectBucketsInFirstSeenOrder(t *testing.T) {
	t.Parallel()
	facts := []domain.SessionFacts{
		{Subject: "math", FocusedMinutes: 25},
		{Subject: "", FocusedMinutes: 10},
		{Subject: "writing", FocusedMinutes: 0},
		{Subject: "math", FocusedMinutes: 15},
		{Subject: "", FocusedMinutes: 5},
	}
	got := domain.TotalsBySubject(facts)
	want := []domain.SubjectTotal{
		{Subject: "math", FocusedMinutes: 40},
		{Subject: "Other", FocusedMinutes: 15},
		{Subject: "writing", FocusedMinutes: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestTotalsBySubjectEmptyInput(t *testing.T) {
	t.Parallel()
	if got := domain.TotalsBySubject(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %v", got)
	}
}
